package handlers

import (
	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/ports"
	"log"
	"net/http"
	"time"
)

// HealthHandler reports liveness, the cache size and a best-effort
// probe of each upstream dependency.
type HealthHandler struct {
	Cache   ports.CoordinateCache
	Probers map[string]ports.Prober
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	size, err := h.Cache.Len(ctx)
	if err != nil {
		log.Printf("cache size lookup failed: %v", err)
	}

	services := make(map[string]string, len(h.Probers))
	for name, prober := range h.Probers {
		services[name] = prober.Probe(ctx)
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status:    "online",
		Timestamp: time.Now(),
		CacheSize: size,
		Services:  services,
	})
}
