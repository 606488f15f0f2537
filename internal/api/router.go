package api

import (
	"delivery-fee-service/internal/api/handlers"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	calculator *services.Calculator,
	cache ports.CoordinateCache,
	probers map[string]ports.Prober,
) http.Handler {
	mux := http.NewServeMux()

	feeHandler := &handlers.FeeHandler{Calculator: calculator}
	healthHandler := &handlers.HealthHandler{Cache: cache, Probers: probers}
	cacheHandler := &handlers.CacheHandler{Cache: cache}
	metaHandler := &handlers.MetaHandler{Calculator: calculator}

	mux.HandleFunc("GET /{$}", metaHandler.Info)
	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.HandleFunc("POST /calculate", feeHandler.Calculate)
	mux.HandleFunc("GET /test/{postal_code}", feeHandler.TestPostalCode)
	mux.HandleFunc("GET /test-address/{address...}", feeHandler.TestAddress)
	mux.HandleFunc("POST /clear-cache", cacheHandler.Clear)

	// Everything else gets the uniform 404 envelope.
	mux.HandleFunc("/", handlers.NotFound)

	return loggingMiddleware(recoverMiddleware(mux))
}
