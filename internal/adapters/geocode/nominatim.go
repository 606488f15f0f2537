package geocode

import (
	"context"
	"delivery-fee-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const userAgent = "delivery-fee-service/1.0 (ops@levesol.com.br)"

// NominatimClient implements Geocoder against the public Nominatim API.
//
// Queries are restricted to Brazil and capped at a single candidate.
// The heterogeneous address-component fields of the upstream response
// are collapsed into ports.GeocodeResult here, not in callers.
type NominatimClient struct {
	session *http.Client
	baseURL string
}

func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		session: &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

type nominatimEntry struct {
	// Nominatim serializes coordinates as strings.
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Municipality string `json:"municipality"`
		Village      string `json:"village"`
		County       string `json:"county"`
		State        string `json:"state"`
		Postcode     string `json:"postcode"`
	} `json:"address"`
}

// Search geocodes a free-text query. The boolean result reports whether
// any candidate was found; errors are transport/decoding failures only.
func (c *NominatimClient) Search(ctx context.Context, query string, withDetails bool) (ports.GeocodeResult, bool, error) {
	endpoint := c.baseURL + "/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", "br")
	if withDetails {
		q.Set("addressdetails", "1")
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.GeocodeResult{}, false, fmt.Errorf("geocode unexpected status: %d", resp.StatusCode)
	}

	var decoded []nominatimEntry
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded) == 0 {
		return ports.GeocodeResult{}, false, nil
	}

	entry := decoded[0]

	lat, err := strconv.ParseFloat(entry.Lat, 64)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("parse geocode latitude %q: %w", entry.Lat, err)
	}
	lon, err := strconv.ParseFloat(entry.Lon, 64)
	if err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("parse geocode longitude %q: %w", entry.Lon, err)
	}

	return ports.GeocodeResult{
		Lat:         lat,
		Lon:         lon,
		DisplayName: entry.DisplayName,
		City:        firstNonEmpty(entry.Address.City, entry.Address.Town, entry.Address.Municipality, entry.Address.Village, entry.Address.County),
		Region:      entry.Address.State,
		PostalCode:  entry.Address.Postcode,
	}, true, nil
}

// Probe issues a minimal city search.
func (c *NominatimClient) Probe(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return ports.StatusUnreachable
	}
	req.Header.Set("User-Agent", userAgent)

	q := req.URL.Query()
	q.Set("q", "São Paulo")
	q.Set("format", "json")
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return ports.StatusUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.StatusDegraded
	}
	return ports.StatusOperational
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
