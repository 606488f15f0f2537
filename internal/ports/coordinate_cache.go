package ports

import (
	"context"

	"delivery-fee-service/internal/domain"
)

// CoordinateCache stores resolved coordinates keyed by normalized
// identifier (digits-only postal code or "addr:"-prefixed address).
// Entries never expire; Clear is the only eviction path.
type CoordinateCache interface {
	Get(ctx context.Context, key string) (domain.Coordinate, bool, error)
	Put(ctx context.Context, key string, coord domain.Coordinate) error
	Len(ctx context.Context) (int, error)
	// Clear drops all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
