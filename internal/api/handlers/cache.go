package handlers

import (
	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
	"fmt"
	"log"
	"net/http"
	"time"
)

// CacheHandler exposes the administrative cache reset.
type CacheHandler struct {
	Cache ports.CoordinateCache
}

func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Cache.Clear(r.Context())
	if err != nil {
		log.Printf("cache clear failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, domain.CodeInternalError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ClearCacheResponse{
		Status:          "success",
		Message:         fmt.Sprintf("cache cleared, %d entries removed", removed),
		PreviousEntries: removed,
		Timestamp:       time.Now(),
	})
}
