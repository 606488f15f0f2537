package domain

// Coordinate is an immutable resolved location: geographic position plus
// the normalized address fields reported by the upstream services.
type Coordinate struct {
	Lat        float64
	Lon        float64
	Address    string
	City       string
	Region     string
	PostalCode string
}
