package ports

import "context"

// Driving distance and travel duration for the best route between two points.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Contract for retrieving a driving route between two lon/lat pairs.
type RouteProvider interface {
	// Route returns distance and duration for the best driving route.
	Route(ctx context.Context, originLat, originLon, destLat, destLon float64) (RouteResult, error)
}
