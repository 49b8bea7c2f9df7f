package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"materialOrderManagement/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestForward_OK(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got == "" {
			t.Errorf("missing address parameter")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"geometry": map[string]any{"location": map[string]float64{"lat": 19.4326, "lng": -99.1332}}},
			},
		})
	})

	point, err := c.Forward(context.Background(), "Av. Siempre Viva 742, CDMX")
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if point.Lat != 19.4326 || point.Lng != -99.1332 {
		t.Fatalf("Forward = %+v, want (19.4326, -99.1332)", point)
	}
}

func TestForward_ZeroResults(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS", "results": []any{}})
	})

	_, err := c.Forward(context.Background(), "no such place")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestForward_ProviderDenied(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "REQUEST_DENIED", "error_message": "bad key"})
	})

	_, err := c.Forward(context.Background(), "anywhere")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestForward_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient("test-key", WithBaseURL(srv.URL))
	srv.Close() // connection refused from here on

	_, err := c.Forward(context.Background(), "anywhere")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider for transport failure, got %v", err)
	}
}

func TestReverse_PartialComponents(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latlng"); got == "" {
			t.Errorf("missing latlng parameter")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{{
				"geometry": map[string]any{"location": map[string]float64{"lat": 1, "lng": 2}},
				"address_components": []map[string]any{
					{"long_name": "Av. Siempre Viva", "types": []string{"route"}},
					{"long_name": "Cuauhtémoc", "types": []string{"sublocality", "political"}},
					{"long_name": "Ciudad de México", "types": []string{"administrative_area_level_1"}},
				},
			}},
		})
	})

	addr, err := c.Reverse(context.Background(), models.LatLng{Lat: 19.43, Lng: -99.13})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if addr.Street != "Av. Siempre Viva" {
		t.Errorf("Street = %q", addr.Street)
	}
	if addr.Colony != "Cuauhtémoc" {
		t.Errorf("Colony = %q", addr.Colony)
	}
	if addr.State != "Ciudad de México" {
		t.Errorf("State = %q", addr.State)
	}
	// Absent components must be empty strings, not an error.
	if addr.Number != "" || addr.PostalCode != "" || addr.Municipality != "" {
		t.Errorf("absent components should be empty, got %+v", addr)
	}
}

func TestResolution_TwoPhase(t *testing.T) {
	res := NewResolution()
	if res.State() != StateUnresolved {
		t.Fatalf("new resolution state = %q", res.State())
	}
	if err := res.Confirm(); !errors.Is(err, ErrNothingProposed) {
		t.Fatalf("confirm before propose: %v", err)
	}
	if _, ok := res.Confirmed(); ok {
		t.Fatal("unconfirmed resolution must not expose a point")
	}

	if err := res.Propose(models.LatLng{Lat: 19.4, Lng: -99.1}); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, ok := res.Confirmed(); ok {
		t.Fatal("proposed resolution must not expose a point yet")
	}

	// The user drags the marker before acknowledging.
	if err := res.Adjust(models.LatLng{Lat: 19.5, Lng: -99.2}); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if err := res.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	point, ok := res.Confirmed()
	if !ok || point.Lat != 19.5 || point.Lng != -99.2 {
		t.Fatalf("Confirmed = %+v, %v", point, ok)
	}

	// Confirmed resolutions are frozen.
	if err := res.Adjust(models.LatLng{}); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("adjust after confirm: %v", err)
	}
	if err := res.Propose(models.LatLng{}); !errors.Is(err, ErrAlreadyConfirmed) {
		t.Fatalf("propose after confirm: %v", err)
	}
}

func TestResolver_ResolveProposesOnly(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"geometry": map[string]any{"location": map[string]float64{"lat": 19.4, "lng": -99.1}}},
			},
		})
	})
	r := NewResolver(c)

	res, err := r.Resolve(context.Background(), "Av. Siempre Viva 742")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.State() != StateProposed {
		t.Fatalf("Resolve state = %q, want proposed", res.State())
	}
	if _, ok := res.Confirmed(); ok {
		t.Fatal("Resolve must not confirm on geocoding success alone")
	}
}
