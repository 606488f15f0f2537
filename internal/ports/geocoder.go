package ports

import "context"

// Single geocoding candidate normalized from the upstream response shape.
type GeocodeResult struct {
	Lat         float64
	Lon         float64
	DisplayName string
	City        string
	Region      string
	PostalCode  string
}

// Contract for free-text geocoding. Search returns (zero value, false, nil)
// when the query matches nothing; errors are reserved for transport and
// decoding failures.
type Geocoder interface {
	Search(ctx context.Context, query string, withDetails bool) (GeocodeResult, bool, error)
}
