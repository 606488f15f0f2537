package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"delivery-fee-service/internal/domain"
)

// PostgresCoordinateCache keeps resolved coordinates in a Postgres
// table so the cache outlives a single instance. Keys are expected to
// be normalized by the caller.
type PostgresCoordinateCache struct {
	DB *sql.DB
}

func NewPostgresCoordinateCache(db *sql.DB) *PostgresCoordinateCache {
	return &PostgresCoordinateCache{DB: db}
}

// InitSchema creates the cache table when it does not exist yet.
func (c *PostgresCoordinateCache) InitSchema(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS coordinate_cache (
		key         TEXT PRIMARY KEY,
		lat         DOUBLE PRECISION NOT NULL,
		lon         DOUBLE PRECISION NOT NULL,
		address     TEXT NOT NULL DEFAULT '',
		city        TEXT NOT NULL DEFAULT '',
		region      TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT ''
	);
	`
	if _, err := c.DB.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("coordinate cache: create table: %w", err)
	}
	return nil
}

func (c *PostgresCoordinateCache) Get(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	if c.DB == nil {
		return domain.Coordinate{}, false, errors.New("coordinate cache: db is nil")
	}

	q := `
	SELECT lat, lon, address, city, region, postal_code
	FROM coordinate_cache
	WHERE key = $1;
	`

	var coord domain.Coordinate
	err := c.DB.QueryRowContext(ctx, q, key).Scan(
		&coord.Lat, &coord.Lon, &coord.Address, &coord.City, &coord.Region, &coord.PostalCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("coordinate cache: get %q: %w", key, err)
	}

	return coord, true, nil
}

func (c *PostgresCoordinateCache) Put(ctx context.Context, key string, coord domain.Coordinate) error {
	if c.DB == nil {
		return errors.New("coordinate cache: db is nil")
	}

	q := `
	INSERT INTO coordinate_cache (key, lat, lon, address, city, region, postal_code)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (key) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		region = EXCLUDED.region,
		postal_code = EXCLUDED.postal_code;
	`

	if _, err := c.DB.ExecContext(ctx, q, key, coord.Lat, coord.Lon, coord.Address, coord.City, coord.Region, coord.PostalCode); err != nil {
		return fmt.Errorf("coordinate cache: put %q: %w", key, err)
	}
	return nil
}

func (c *PostgresCoordinateCache) Len(ctx context.Context) (int, error) {
	if c.DB == nil {
		return 0, errors.New("coordinate cache: db is nil")
	}

	var n int
	if err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM coordinate_cache;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("coordinate cache: count: %w", err)
	}
	return n, nil
}

func (c *PostgresCoordinateCache) Clear(ctx context.Context) (int, error) {
	if c.DB == nil {
		return 0, errors.New("coordinate cache: db is nil")
	}

	res, err := c.DB.ExecContext(ctx, `DELETE FROM coordinate_cache;`)
	if err != nil {
		return 0, fmt.Errorf("coordinate cache: clear: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("coordinate cache: clear rows affected: %w", err)
	}
	return int(removed), nil
}
