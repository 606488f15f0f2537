package domain

// How a distance figure was obtained.
const (
	MethodRoutingService      = "routing-service"
	MethodGreatCircleFallback = "great-circle-fallback"
)

// DistanceEstimate is a one-way driving estimate between two coordinates.
type DistanceEstimate struct {
	Meters  float64
	Seconds float64
	Method  string
}
