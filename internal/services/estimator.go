package services

import (
	"context"
	"log"
	"math"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
)

const earthRadiusMeters = 6371000.0

// Estimator produces a one-way distance-and-duration estimate between
// two coordinates. It prefers the routing service and degrades to a
// great-circle approximation on any failure, so Estimate never fails.
type Estimator struct {
	router ports.RouteProvider

	// RoadFactor scales the great-circle distance to approximate road
	// distance; AvgSpeedKmh turns that distance into a duration. Both
	// are empirical constants carried from operations, not derived.
	roadFactor  float64
	avgSpeedKmh float64
}

func NewEstimator(router ports.RouteProvider, roadFactor, avgSpeedKmh float64) *Estimator {
	return &Estimator{
		router:      router,
		roadFactor:  roadFactor,
		avgSpeedKmh: avgSpeedKmh,
	}
}

// Estimate returns the routing-service figures when available and the
// scaled great-circle estimate otherwise.
func (e *Estimator) Estimate(ctx context.Context, origin, destination domain.Coordinate) domain.DistanceEstimate {
	if e.router != nil {
		result, err := e.router.Route(ctx, origin.Lat, origin.Lon, destination.Lat, destination.Lon)
		if err == nil {
			return domain.DistanceEstimate{
				Meters:  result.DistanceMeters,
				Seconds: result.DurationSeconds,
				Method:  domain.MethodRoutingService,
			}
		}
		log.Printf("routing service failed, using great-circle fallback: %v", err)
	}

	return e.greatCircle(origin, destination)
}

func (e *Estimator) greatCircle(origin, destination domain.Coordinate) domain.DistanceEstimate {
	meters := haversineMeters(origin.Lat, origin.Lon, destination.Lat, destination.Lon) * e.roadFactor
	seconds := meters / 1000.0 * 3600.0 / e.avgSpeedKmh

	return domain.DistanceEstimate{
		Meters:  meters,
		Seconds: seconds,
		Method:  domain.MethodGreatCircleFallback,
	}
}

// haversineMeters returns the great-circle distance in meters between
// two points specified in decimal degrees.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
