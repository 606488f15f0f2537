package services

// FallbackEntry maps a numeric CEP prefix to approximate metro-area
// coordinates. Prefixes are empirical data, not derived values; keep
// them as explicit entries.
type FallbackEntry struct {
	Prefix string
	City   string
	Region string
	Lat    float64
	Lon    float64
}

// DefaultFallbackTable lists known metro areas, longest prefix first so
// a linear scan finds the most specific match.
func DefaultFallbackTable() []FallbackEntry {
	return []FallbackEntry{
		// Bauru and surroundings
		{Prefix: "17017", City: "Bauru", Region: "SP", Lat: -22.3155, Lon: -49.0708},
		{Prefix: "17015", City: "Bauru", Region: "SP", Lat: -22.3155, Lon: -49.0708},
		{Prefix: "17120", City: "Agudos", Region: "SP", Lat: -22.2189, Lon: -49.0478},
		{Prefix: "17500", City: "Marília", Region: "SP", Lat: -22.4249, Lon: -49.9461},
		{Prefix: "17600", City: "Tupã", Region: "SP", Lat: -22.2208, Lon: -50.1761},
		{Prefix: "17800", City: "Adamantina", Region: "SP", Lat: -21.6833, Lon: -51.1333},
		{Prefix: "18600", City: "Botucatu", Region: "SP", Lat: -22.8858, Lon: -48.4452},
		// São Paulo capital
		{Prefix: "01310", City: "São Paulo", Region: "SP", Lat: -23.5489, Lon: -46.6388},
		{Prefix: "01000", City: "São Paulo", Region: "SP", Lat: -23.5505, Lon: -46.6333},
		// Other capitals
		{Prefix: "80000", City: "Curitiba", Region: "PR", Lat: -25.4284, Lon: -49.2733},
		{Prefix: "30000", City: "Belo Horizonte", Region: "MG", Lat: -19.9167, Lon: -43.9345},
		// Region-wide default for Bauru area codes
		{Prefix: "17", City: "Bauru", Region: "SP", Lat: -22.3155, Lon: -49.0708},
	}
}

// matchFallback returns the first (most specific) entry whose prefix
// matches the digits-only postal code.
func matchFallback(table []FallbackEntry, postalCode string) (FallbackEntry, bool) {
	for _, e := range table {
		if len(postalCode) >= len(e.Prefix) && postalCode[:len(e.Prefix)] == e.Prefix {
			return e, true
		}
	}
	return FallbackEntry{}, false
}
