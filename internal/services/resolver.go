package services

import (
	"context"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
	"delivery-fee-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Resolver turns a postal code or free-form address into a Coordinate.
//
// It coordinates:
//   - Postal-code normalization
//   - The registry -> geocoder -> static-table fallback chain
//   - Write-through coordinate caching
//
// The resolver is safe for concurrent use as long as its cache is.
type Resolver struct {
	postal   ports.PostalLookup
	geocoder ports.Geocoder
	cache    ports.CoordinateCache
	fallback []FallbackEntry
}

func NewResolver(
	postal ports.PostalLookup,
	geocoder ports.Geocoder,
	cache ports.CoordinateCache,
	fallback []FallbackEntry,
) *Resolver {
	return &Resolver{
		postal:   postal,
		geocoder: geocoder,
		cache:    cache,
		fallback: fallback,
	}
}

// NormalizePostalCode strips everything but digits from a CEP.
func NormalizePostalCode(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPostalCode renders a normalized CEP as XXXXX-XXX.
// Inputs that do not normalize to 8 digits are returned unchanged.
func FormatPostalCode(cep string) string {
	norm := NormalizePostalCode(cep)
	if len(norm) != 8 {
		return cep
	}
	return norm[:5] + "-" + norm[5:]
}

// AddressCacheKey builds the cache key for a free-form address.
func AddressCacheKey(address string) string {
	return "addr:" + strings.ToLower(strings.TrimSpace(address))
}

// ResolvePostalCode resolves a CEP through the registry, the geocoder
// (street-level, then city-level) and finally the static prefix table.
// Successful resolutions are cached under the digits-only CEP.
func (r *Resolver) ResolvePostalCode(ctx context.Context, cep string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "resolver.ResolvePostalCode")(&err)

	norm := NormalizePostalCode(cep)
	if len(norm) != 8 {
		return domain.Coordinate{}, domain.NewCodedError(
			domain.CodeInvalidPostalCode,
			fmt.Sprintf("invalid postal code: %s (must contain 8 digits)", cep),
		)
	}

	if coord, ok := r.cacheGet(ctx, norm); ok {
		return coord, nil
	}

	record, err := r.postal.Lookup(ctx, norm)
	if err != nil {
		var nf *ports.PostalCodeNotFoundError
		if errors.As(err, &nf) {
			return domain.Coordinate{}, domain.NewCodedError(
				domain.CodeInvalidPostalCode,
				fmt.Sprintf("postal code not found: %s", FormatPostalCode(cep)),
			)
		}
		return domain.Coordinate{}, fmt.Errorf("postal registry lookup %q: %w", norm, err)
	}

	coord, err := r.geocodePostalRecord(ctx, norm, record)
	if err != nil {
		return domain.Coordinate{}, err
	}

	r.cachePut(ctx, norm, coord)
	return coord, nil
}

// geocodePostalRecord walks the fallback chain for a registry record:
// street-level query, city-level query, static prefix table. A geocoder
// failure counts as a miss so an upstream outage still reaches the
// static table.
func (r *Resolver) geocodePostalRecord(ctx context.Context, norm string, record ports.PostalAddress) (domain.Coordinate, error) {
	if record.Street != "" {
		query := fmt.Sprintf("%s, %s, %s, %s, Brazil", record.Street, record.Neighborhood, record.City, record.Region)

		res, found, err := r.geocoder.Search(ctx, query, false)
		if err != nil {
			log.Printf("street geocode failed for %q, trying city: %v", norm, err)
			found = false
		}
		if found {
			return domain.Coordinate{
				Lat:        res.Lat,
				Lon:        res.Lon,
				Address:    streetDisplay(record),
				City:       record.City,
				Region:     record.Region,
				PostalCode: FormatPostalCode(norm),
			}, nil
		}
	}

	cityQuery := fmt.Sprintf("%s, %s, Brazil", record.City, record.Region)
	res, found, err := r.geocoder.Search(ctx, cityQuery, false)
	if err != nil {
		log.Printf("city geocode failed for %q, trying static table: %v", norm, err)
		found = false
	}
	if found {
		return domain.Coordinate{
			Lat:        res.Lat,
			Lon:        res.Lon,
			Address:    record.City + "-" + record.Region,
			City:       record.City,
			Region:     record.Region,
			PostalCode: FormatPostalCode(norm),
		}, nil
	}

	entry, ok := matchFallback(r.fallback, norm)
	if !ok {
		return domain.Coordinate{}, domain.NewCodedError(
			domain.CodeCoordinatesUnavailable,
			fmt.Sprintf("coordinates unavailable for postal code %s", FormatPostalCode(norm)),
		)
	}

	return domain.Coordinate{
		Lat:        entry.Lat,
		Lon:        entry.Lon,
		Address:    record.City + "-" + record.Region + " (approximate)",
		City:       record.City,
		Region:     record.Region,
		PostalCode: FormatPostalCode(norm),
	}, nil
}

// ResolveAddress geocodes a free-form address directly. Successful
// resolutions are cached under the lower-cased trimmed input.
func (r *Resolver) ResolveAddress(ctx context.Context, address string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "resolver.ResolveAddress")(&err)

	trimmed := strings.TrimSpace(address)
	key := AddressCacheKey(trimmed)

	if coord, ok := r.cacheGet(ctx, key); ok {
		return coord, nil
	}

	query := trimmed
	lower := strings.ToLower(trimmed)
	if !strings.Contains(lower, "brazil") && !strings.Contains(lower, "brasil") {
		query = trimmed + ", Brazil"
	}

	res, found, err := r.geocoder.Search(ctx, query, true)
	if err != nil {
		log.Printf("address geocode failed for %q: %v", trimmed, err)
		found = false
	}
	if !found {
		return domain.Coordinate{}, domain.NewCodedError(
			domain.CodeAddressNotFound,
			fmt.Sprintf("address not found: %s", trimmed),
		)
	}

	display := res.DisplayName
	if display == "" {
		display = trimmed
	}

	coord := domain.Coordinate{
		Lat:        res.Lat,
		Lon:        res.Lon,
		Address:    display,
		City:       res.City,
		Region:     res.Region,
		PostalCode: res.PostalCode,
	}

	r.cachePut(ctx, key, coord)
	return coord, nil
}

// Cache failures never fail a resolution; they only cost extra
// upstream calls.
func (r *Resolver) cacheGet(ctx context.Context, key string) (domain.Coordinate, bool) {
	coord, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Printf("coordinate cache read failed key=%q err=%v", key, err)
		return domain.Coordinate{}, false
	}
	return coord, ok
}

func (r *Resolver) cachePut(ctx context.Context, key string, coord domain.Coordinate) {
	if err := r.cache.Put(ctx, key, coord); err != nil {
		log.Printf("coordinate cache write failed key=%q err=%v", key, err)
	}
}

// streetDisplay renders "street, neighborhood, city-UF" skipping blanks.
func streetDisplay(record ports.PostalAddress) string {
	parts := make([]string, 0, 3)
	if record.Street != "" {
		parts = append(parts, record.Street)
	}
	if record.Neighborhood != "" {
		parts = append(parts, record.Neighborhood)
	}
	parts = append(parts, record.City+"-"+record.Region)
	return strings.Join(parts, ", ")
}
