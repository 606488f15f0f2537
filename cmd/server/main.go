package main

import (
	"context"
	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/adapters/geocode"
	"delivery-fee-service/internal/adapters/postal"
	"delivery-fee-service/internal/adapters/routing"
	"delivery-fee-service/internal/api"
	"delivery-fee-service/internal/platform/db"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (ViaCEP, Nominatim, OSRM, cache backend)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "7777")

	viacepClient := postal.NewViaCEPClient(getEnv("VIACEP_BASE_URL", "https://viacep.com.br"))
	nominatimClient := geocode.NewNominatimClient(getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"))
	osrmClient := routing.NewOSRMClient(getEnv("OSRM_BASE_URL", "http://router.project-osrm.org"))

	coordCache, err := openCache()
	if err != nil {
		log.Fatal(err)
	}

	resolver := services.NewResolver(viacepClient, nominatimClient, coordCache, services.DefaultFallbackTable())
	estimator := services.NewEstimator(
		osrmClient,
		getEnvFloat("ROAD_FACTOR", 1.3),
		getEnvFloat("FALLBACK_SPEED_KMH", 80.0),
	)
	calculator := services.NewCalculator(resolver, estimator, services.CalculatorConfig{
		DepotPostalCode: getEnv("DEPOT_POSTAL_CODE", "17017-337"),
		FranchiseKm:     getEnvFloat("FRANCHISE_KM", 30.0),
		RatePerKm:       getEnvFloat("RATE_PER_KM", 1.60),
	})

	router := api.NewRouter(calculator, coordCache, map[string]ports.Prober{
		"viacep":    viacepClient,
		"nominatim": nominatimClient,
		"osrm":      osrmClient,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openCache selects the coordinate cache backend. The default in-memory
// map matches the contract (process-lifetime, cleared only explicitly);
// redis and postgres allow several instances to share one cache.
func openCache() (ports.CoordinateCache, error) {
	switch backend := getEnv("CACHE_BACKEND", "memory"); backend {
	case "memory":
		return cache.NewMemoryCoordinateCache(), nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
		return cache.NewRedisCoordinateCache(client), nil

	case "postgres":
		conn, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		pgCache := cache.NewPostgresCoordinateCache(conn)
		if err := pgCache.InitSchema(context.Background()); err != nil {
			return nil, err
		}
		return pgCache, nil

	default:
		log.Fatalf("unknown CACHE_BACKEND %q (use memory, redis or postgres)", backend)
		return nil, nil
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("ignoring invalid %s=%q", key, v)
	}
	return fallback
}
