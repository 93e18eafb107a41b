package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/litescript/ls-moonwatch/internal/moon"
)

const (
	// DefaultGeocoderURL is the Nominatim reverse geocoding endpoint.
	DefaultGeocoderURL = "https://nominatim.openstreetmap.org/reverse"

	// DefaultGeocoderTimeout for the lookup request.
	DefaultGeocoderTimeout = 10 * time.Second
)

// Geocoder turns a coordinate into a place name, best-effort.
type Geocoder struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// GeocoderOption configures a Geocoder.
type GeocoderOption func(*Geocoder)

// WithGeocoderURL sets a custom reverse geocoding endpoint.
func WithGeocoderURL(url string) GeocoderOption {
	return func(g *Geocoder) {
		g.url = url
	}
}

// WithGeocoderTimeout sets the request timeout.
func WithGeocoderTimeout(d time.Duration) GeocoderOption {
	return func(g *Geocoder) {
		g.timeout = d
	}
}

// WithGeocoderHTTPClient sets a custom HTTP client.
func WithGeocoderHTTPClient(client *http.Client) GeocoderOption {
	return func(g *Geocoder) {
		g.client = client
	}
}

// NewGeocoder creates a reverse geocoder.
func NewGeocoder(opts ...GeocoderOption) *Geocoder {
	g := &Geocoder{
		url:     DefaultGeocoderURL,
		timeout: DefaultGeocoderTimeout,
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.client == nil {
		g.client = &http.Client{Timeout: g.timeout}
	}

	return g
}

// geocodeResponse is the Nominatim jsonv2 shape, trimmed to what we use.
type geocodeResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

// Reverse resolves a place name for a coordinate. Failures wrap
// ErrGeocodeUnavailable; callers degrade to showing raw coordinates.
func (g *Geocoder) Reverse(ctx context.Context, coord moon.Coordinate) (string, error) {
	u := fmt.Sprintf("%s?format=jsonv2&lat=%s&lon=%s", g.url,
		url.QueryEscape(fmt.Sprintf("%.6f", coord.LatDeg)),
		url.QueryEscape(fmt.Sprintf("%.6f", coord.LonDeg)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}

	req.Header.Set("User-Agent", "ls-moonwatch/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrGeocodeUnavailable, resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGeocodeUnavailable, err)
	}

	locality := body.Address.City
	if locality == "" {
		locality = body.Address.Town
	}
	if locality == "" {
		locality = body.Address.Village
	}

	switch {
	case locality != "" && body.Address.Country != "":
		return locality + ", " + body.Address.Country, nil
	case locality != "":
		return locality, nil
	case body.DisplayName != "":
		return body.DisplayName, nil
	}

	return "", fmt.Errorf("%w: empty response", ErrGeocodeUnavailable)
}
