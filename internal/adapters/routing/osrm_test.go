package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// OSRM takes lon,lat pairs in the path.
		if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/-49.070800,-22.315500;-46.638800,-23.548900") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("overview") != "false" {
			t.Errorf("overview = %q, want false", r.URL.Query().Get("overview"))
		}
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":345632.1,"duration":14980.5}]}`))
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)

	res, err := c.Route(context.Background(), -22.3155, -49.0708, -23.5489, -46.6388)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.DistanceMeters != 345632.1 || res.DurationSeconds != 14980.5 {
		t.Errorf("result = %+v, want distance=345632.1 duration=14980.5", res)
	}
}

func TestRouteNonOkCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)

	if _, err := c.Route(context.Background(), -22.3155, -49.0708, -23.5489, -46.6388); err == nil {
		t.Error("expected error for code != Ok")
	}
}

func TestRouteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)

	if _, err := c.Route(context.Background(), -22.3155, -49.0708, -23.5489, -46.6388); err == nil {
		t.Error("expected error for non-200 reply")
	}
}

func TestRouteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)

	if _, err := c.Route(context.Background(), -22.3155, -49.0708, -23.5489, -46.6388); err == nil {
		t.Error("expected error for malformed body")
	}
}
