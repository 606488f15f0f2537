package routing

import (
	"context"
	"delivery-fee-service/internal/ports"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OSRMClient implements RouteProvider against an OSRM routing server.
type OSRMClient struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		profile: "driving",
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route fetches the best driving route between two points.
// OSRM expects lon,lat ordering in the path segment.
func (c *OSRMClient) Route(ctx context.Context, originLat, originLon, destLat, destLon float64) (ports.RouteResult, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f",
		c.baseURL, c.profile, originLon, originLat, destLon, destLat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("create route request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("overview", "false")
	q.Set("alternatives", "false")
	q.Set("steps", "false")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.RouteResult{}, fmt.Errorf("route unexpected status: %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("no route found (code=%q routes=%d)", decoded.Code, len(decoded.Routes))
	}

	best := decoded.Routes[0]
	return ports.RouteResult{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}

// Probe requests a known route (Bauru -> São Paulo).
func (c *OSRMClient) Probe(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/-49.0708,-22.3155;-46.6388,-23.5489?overview=false",
		c.baseURL, c.profile,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.StatusUnreachable
	}

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
