package handlers

import (
	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

// FeeHandler exposes the surcharge calculation over HTTP: the main
// POST endpoint plus the read-only test variants.
type FeeHandler struct {
	Calculator *services.Calculator
}

// Calculate handles POST /calculate. The body must contain exactly one
// of "address" or "postal_code"; validation failures never reach the
// upstream services.
func (h *FeeHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, domain.CodeMissingInput,
				"inform address or postal_code in the request body")
			return
		}
		writeError(w, r, http.StatusBadRequest, domain.CodeMissingInput, "request body must be a JSON object")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, domain.CodeMissingInput, "body must contain only one JSON object")
		return
	}

	switch {
	case req.Address != nil && req.PostalCode != nil:
		writeError(w, r, http.StatusBadRequest, domain.CodeMissingInput,
			"inform exactly one of address or postal_code")
	case req.Address != nil:
		h.byAddress(w, r, *req.Address)
	case req.PostalCode != nil:
		h.byPostalCode(w, r, *req.PostalCode)
	default:
		writeError(w, r, http.StatusBadRequest, domain.CodeMissingInput,
			"inform address or postal_code in the request body")
	}
}

// TestPostalCode handles GET /test/{postal_code}.
func (h *FeeHandler) TestPostalCode(w http.ResponseWriter, r *http.Request) {
	h.byPostalCode(w, r, r.PathValue("postal_code"))
}

// TestAddress handles GET /test-address/{address...}.
func (h *FeeHandler) TestAddress(w http.ResponseWriter, r *http.Request) {
	h.byAddress(w, r, r.PathValue("address"))
}

func (h *FeeHandler) byPostalCode(w http.ResponseWriter, r *http.Request, cep string) {
	if len(services.NormalizePostalCode(cep)) != 8 {
		writeError(w, r, http.StatusBadRequest, domain.CodeInvalidPostalCode,
			"invalid postal code: "+cep+" (use XXXXX-XXX or XXXXXXXX)")
		return
	}

	result, err := h.Calculator.CalculateByPostalCode(r.Context(), cep)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, feeResponse(h.Calculator, result, true))
}

func (h *FeeHandler) byAddress(w http.ResponseWriter, r *http.Request, address string) {
	if strings.TrimSpace(address) == "" {
		writeError(w, r, http.StatusBadRequest, domain.CodeEmptyAddress, "the address must not be empty")
		return
	}

	result, err := h.Calculator.CalculateByAddress(r.Context(), address)
	if err != nil {
		h.writeCalculationError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, feeResponse(h.Calculator, result, false))
}

func (h *FeeHandler) writeCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	var coded *domain.CodedError
	if errors.As(err, &coded) {
		writeError(w, r, http.StatusBadRequest, coded.Code, coded.Message)
		return
	}

	log.Printf("fee calculation failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, domain.CodeInternalError, "internal server error")
}

func feeResponse(calc *services.Calculator, result domain.FeeResult, byPostalCode bool) dto.FeeResponse {
	destination := dto.DestinationResponse{
		Address: result.Destination.Address,
		City:    result.Destination.City,
		Region:  result.Destination.Region,
		Coordinates: dto.Coordinates{
			Lat: result.Destination.Lat,
			Lon: result.Destination.Lon,
		},
	}
	if byPostalCode {
		destination.PostalCode = result.Destination.PostalCode
	} else {
		destination.AddressInput = result.DestinationInput
		destination.PostalCode = result.Destination.PostalCode
	}

	return dto.FeeResponse{
		Status: "success",
		Origin: dto.OriginResponse{
			PostalCode: result.Origin.PostalCode,
			Address:    result.Origin.Address,
			Coordinates: dto.Coordinates{
				Lat: result.Origin.Lat,
				Lon: result.Origin.Lon,
			},
		},
		Destination: destination,
		Distance: dto.DistanceResponse{
			OneWayKm:         result.OneWayKm,
			RoundTripKm:      result.RoundTripKm,
			EstimatedMinutes: result.EstimatedMinutes,
			Method:           result.Estimate.Method,
		},
		Calculation: dto.CalculationResponse{
			FranchiseOneWayKm:    calc.FranchiseKm(),
			FranchiseRoundTripKm: calc.FranchiseKm() * 2,
			ExcessKm:             result.ExcessKm,
			RatePerKm:            calc.RatePerKm(),
			Fee:                  result.Fee,
		},
		Timestamp: result.Timestamp,
	}
}
