package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"delivery-fee-service/internal/adapters/cache"
	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
)

type stubPostal struct {
	records map[string]ports.PostalAddress
	calls   int
}

func (s *stubPostal) Lookup(ctx context.Context, postalCode string) (ports.PostalAddress, error) {
	s.calls++
	rec, ok := s.records[postalCode]
	if !ok {
		return ports.PostalAddress{}, &ports.PostalCodeNotFoundError{PostalCode: postalCode}
	}
	return rec, nil
}

type stubGeocoder struct {
	results map[string]ports.GeocodeResult
}

func (s *stubGeocoder) Search(ctx context.Context, query string, withDetails bool) (ports.GeocodeResult, bool, error) {
	res, ok := s.results[query]
	return res, ok, nil
}

type stubRouter struct {
	meters, seconds float64
}

func (s *stubRouter) Route(ctx context.Context, originLat, originLon, destLat, destLon float64) (ports.RouteResult, error) {
	return ports.RouteResult{DistanceMeters: s.meters, DurationSeconds: s.seconds}, nil
}

func newTestHandler(meters float64) (*FeeHandler, *stubPostal) {
	postal := &stubPostal{records: map[string]ports.PostalAddress{
		"17017337": {City: "Bauru", Region: "SP"},
		"17500005": {City: "Marília", Region: "SP"},
	}}
	geocoder := &stubGeocoder{results: map[string]ports.GeocodeResult{
		"Bauru, SP, Brazil":   {Lat: -22.3155, Lon: -49.0708},
		"Marília, SP, Brazil": {Lat: -22.4249, Lon: -49.9461},
	}}

	resolver := services.NewResolver(postal, geocoder, cache.NewMemoryCoordinateCache(), services.DefaultFallbackTable())
	estimator := services.NewEstimator(&stubRouter{meters: meters, seconds: meters / 22.2}, 1.3, 80)
	calculator := services.NewCalculator(resolver, estimator, services.CalculatorConfig{
		DepotPostalCode: "17017-337",
		FranchiseKm:     30,
		RatePerKm:       1.60,
	})

	return &FeeHandler{Calculator: calculator}, postal
}

func postCalculate(t *testing.T, h *FeeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Calculate(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var res dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return res
}

func TestCalculateMissingBody(t *testing.T) {
	h, postal := newTestHandler(50000)

	rec := postCalculate(t, h, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	res := decodeError(t, rec)
	if res.Status != "error" || res.Code != domain.CodeMissingInput {
		t.Errorf("envelope = %+v, want status=error code=MISSING_INPUT", res)
	}
	if postal.calls != 0 {
		t.Errorf("postal calls = %d, want 0", postal.calls)
	}
}

func TestCalculateEmptyObject(t *testing.T) {
	h, _ := newTestHandler(50000)

	rec := postCalculate(t, h, `{}`)
	if res := decodeError(t, rec); rec.Code != http.StatusBadRequest || res.Code != domain.CodeMissingInput {
		t.Errorf("status=%d code=%s, want 400 MISSING_INPUT", rec.Code, res.Code)
	}
}

func TestCalculateBothFields(t *testing.T) {
	h, _ := newTestHandler(50000)

	rec := postCalculate(t, h, `{"address":"Praça da Sé","postal_code":"17500-005"}`)
	if res := decodeError(t, rec); rec.Code != http.StatusBadRequest || res.Code != domain.CodeMissingInput {
		t.Errorf("status=%d code=%s, want 400 MISSING_INPUT for ambiguous input", rec.Code, res.Code)
	}
}

func TestCalculateEmptyAddress(t *testing.T) {
	h, _ := newTestHandler(50000)

	rec := postCalculate(t, h, `{"address":"   "}`)
	if res := decodeError(t, rec); rec.Code != http.StatusBadRequest || res.Code != domain.CodeEmptyAddress {
		t.Errorf("status=%d code=%s, want 400 EMPTY_ADDRESS", rec.Code, res.Code)
	}
}

func TestCalculateMalformedPostalCode(t *testing.T) {
	h, postal := newTestHandler(50000)

	rec := postCalculate(t, h, `{"postal_code":"123"}`)
	if res := decodeError(t, rec); rec.Code != http.StatusBadRequest || res.Code != domain.CodeInvalidPostalCode {
		t.Errorf("status=%d code=%s, want 400 INVALID_POSTAL_CODE", rec.Code, res.Code)
	}
	if postal.calls != 0 {
		t.Errorf("postal calls = %d, want 0 (validation must precede network calls)", postal.calls)
	}
}

func TestCalculateUnknownPostalCode(t *testing.T) {
	h, _ := newTestHandler(50000)

	rec := postCalculate(t, h, `{"postal_code":"00000-000"}`)
	if res := decodeError(t, rec); rec.Code != http.StatusBadRequest || res.Code != domain.CodeCalculationError {
		t.Errorf("status=%d code=%s, want 400 CALCULATION_ERROR", rec.Code, res.Code)
	}
}

func TestCalculateSuccess(t *testing.T) {
	h, _ := newTestHandler(50000) // 50 km one-way

	rec := postCalculate(t, h, `{"postal_code":"17500-005"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var res dto.FeeResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Status != "success" {
		t.Errorf("status = %q, want success", res.Status)
	}
	if res.Distance.OneWayKm != 50 || res.Distance.RoundTripKm != 100 {
		t.Errorf("distances = %v/%v, want 50/100", res.Distance.OneWayKm, res.Distance.RoundTripKm)
	}
	if res.Calculation.ExcessKm != 40 || res.Calculation.Fee != 64.00 {
		t.Errorf("excess/fee = %v/%v, want 40/64.00", res.Calculation.ExcessKm, res.Calculation.Fee)
	}
	if res.Calculation.FranchiseOneWayKm != 30 || res.Calculation.FranchiseRoundTripKm != 60 {
		t.Errorf("franchise = %v/%v, want 30/60", res.Calculation.FranchiseOneWayKm, res.Calculation.FranchiseRoundTripKm)
	}
	if res.Origin.PostalCode != "17017-337" {
		t.Errorf("origin postal code = %q, want 17017-337", res.Origin.PostalCode)
	}
	if res.Destination.PostalCode != "17500-005" {
		t.Errorf("destination postal code = %q, want 17500-005", res.Destination.PostalCode)
	}
	if res.Distance.Method != domain.MethodRoutingService {
		t.Errorf("method = %q, want %q", res.Distance.Method, domain.MethodRoutingService)
	}
}

func TestCalculateByAddressSuccess(t *testing.T) {
	h, _ := newTestHandler(2000) // 2 km one-way, inside the franchise

	rec := postCalculate(t, h, `{"address":"Marília, SP"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var res dto.FeeResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Calculation.Fee != 0 {
		t.Errorf("fee = %v, want 0 inside the franchise", res.Calculation.Fee)
	}
	if res.Destination.AddressInput != "Marília, SP" {
		t.Errorf("address input = %q, want the raw input echoed", res.Destination.AddressInput)
	}
}
