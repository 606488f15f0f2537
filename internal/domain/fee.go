package domain

import "time"

// FeeResult is the priced outcome of a surcharge calculation.
// Distances and the fee are rounded to 2 decimals; the duration is
// rounded to whole minutes.
type FeeResult struct {
	Origin      Coordinate
	Destination Coordinate
	// DestinationInput echoes the raw identifier the caller supplied
	// (formatted CEP or free-form address).
	DestinationInput string

	Estimate         DistanceEstimate
	OneWayKm         float64
	RoundTripKm      float64
	EstimatedMinutes float64

	ExcessKm float64
	Fee      float64

	Timestamp time.Time
}
