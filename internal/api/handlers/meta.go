package handlers

import (
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/services"
	"fmt"
	"net/http"
)

// MetaHandler serves the service description at the root path.
type MetaHandler struct {
	Calculator *services.Calculator
}

func (h *MetaHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"api":     "delivery distance surcharge calculator",
		"version": "2.0.0",
		"endpoints": map[string]string{
			"/":                       "service information",
			"/health":                 "liveness and upstream status",
			"/calculate":              "POST - calculate the surcharge (accepts 'address' or 'postal_code')",
			"/test/{postal_code}":     "GET - quick test with a postal code",
			"/test-address/{address}": "GET - quick test with an address",
			"/clear-cache":            "POST - reset the coordinate cache",
		},
		"services": map[string]string{
			"postal_code": "ViaCEP",
			"geocoding":   "Nominatim/OpenStreetMap",
			"routing":     "OSRM",
		},
		"business_rules": map[string]any{
			"depot_postal_code":       h.Calculator.DepotPostalCode(),
			"franchise_one_way_km":    h.Calculator.FranchiseKm(),
			"franchise_round_trip_km": h.Calculator.FranchiseKm() * 2,
			"rate_per_km":             h.Calculator.RatePerKm(),
			"formula": fmt.Sprintf(
				"(round_trip_km - %.0f) x %.2f per excess km",
				h.Calculator.FranchiseKm()*2, h.Calculator.RatePerKm(),
			),
		},
	})
}

// NotFound renders the uniform envelope for unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, domain.CodeNotFound,
		"endpoint not found, see / for the available endpoints")
}
