package location

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindCity(t *testing.T) {
	city, ok := FindCity("london")
	if !ok {
		t.Fatal("FindCity(london) not found")
	}
	if city.Name != "London" {
		t.Errorf("Name = %q, want London", city.Name)
	}
	if math.Abs(city.Coordinate.LatDeg-51.5074) > 1e-9 {
		t.Errorf("LatDeg = %v, want 51.5074", city.Coordinate.LatDeg)
	}

	if _, ok := FindCity("Atlantis"); ok {
		t.Error("FindCity(Atlantis) found, want miss")
	}
}

func TestCitiesAreValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Cities {
		if err := c.Coordinate.Validate(); err != nil {
			t.Errorf("%s: %v", c.Name, err)
		}
		if seen[c.Name] {
			t.Errorf("duplicate city %q", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestSelectionLabel(t *testing.T) {
	city, _ := FindCity("Tokyo")
	sel := PresetSelection(city)
	if sel.Label() != "Tokyo" {
		t.Errorf("Label() = %q, want Tokyo", sel.Label())
	}

	sel.Name = ""
	if sel.Label() != "35.68°N 139.65°E" {
		t.Errorf("Label() = %q, want coordinate fallback", sel.Label())
	}
}

func TestLocatorLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":51.5074,"lon":-0.1278,"city":"London","country":"United Kingdom"}`))
	}))
	defer srv.Close()

	loc := NewLocator(WithLocatorURL(srv.URL))
	sel, err := loc.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	if sel.Kind != KindDevice {
		t.Errorf("Kind = %v, want KindDevice", sel.Kind)
	}
	if sel.Name != "London, United Kingdom" {
		t.Errorf("Name = %q", sel.Name)
	}
	if math.Abs(sel.Coordinate.LonDeg+0.1278) > 1e-9 {
		t.Errorf("LonDeg = %v, want -0.1278", sel.Coordinate.LonDeg)
	}
}

func TestLocatorLocate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"provider denial", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"out-of-range coordinate", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"success","lat":120,"lon":0}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			loc := NewLocator(WithLocatorURL(srv.URL))
			_, err := loc.Locate(context.Background())
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("error = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestGeocoderReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "jsonv2" {
			t.Errorf("format = %q, want jsonv2", got)
		}
		w.Write([]byte(`{"display_name":"London, Greater London, England, United Kingdom","address":{"city":"London","country":"United Kingdom"}}`))
	}))
	defer srv.Close()

	geo := NewGeocoder(WithGeocoderURL(srv.URL))
	name, err := geo.Reverse(context.Background(), Cities[0].Coordinate)
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if name != "London, United Kingdom" {
		t.Errorf("name = %q", name)
	}
}

func TestGeocoderReverse_FallsBackToDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name":"Southern Ocean"}`))
	}))
	defer srv.Close()

	geo := NewGeocoder(WithGeocoderURL(srv.URL))
	name, err := geo.Reverse(context.Background(), Cities[0].Coordinate)
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}
	if name != "Southern Ocean" {
		t.Errorf("name = %q, want Southern Ocean", name)
	}
}

func TestGeocoderReverse_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	geo := NewGeocoder(WithGeocoderURL(srv.URL))
	_, err := geo.Reverse(context.Background(), Cities[0].Coordinate)
	if !errors.Is(err, ErrGeocodeUnavailable) {
		t.Errorf("error = %v, want ErrGeocodeUnavailable", err)
	}
}
