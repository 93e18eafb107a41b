package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/litescript/ls-moonwatch/internal/moon"
)

const (
	// DefaultLocatorURL is a free IP geolocation endpoint. In a terminal
	// there is no GPS to ask, so the connection's IP is the closest analog
	// to a device-reported position.
	DefaultLocatorURL = "http://ip-api.com/json"

	// DefaultLocatorTimeout for the lookup request.
	DefaultLocatorTimeout = 10 * time.Second
)

// Locator resolves the device location via IP geolocation.
type Locator struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithLocatorURL sets a custom geolocation endpoint.
func WithLocatorURL(url string) LocatorOption {
	return func(l *Locator) {
		l.url = url
	}
}

// WithLocatorTimeout sets the request timeout.
func WithLocatorTimeout(d time.Duration) LocatorOption {
	return func(l *Locator) {
		l.timeout = d
	}
}

// WithLocatorHTTPClient sets a custom HTTP client.
func WithLocatorHTTPClient(client *http.Client) LocatorOption {
	return func(l *Locator) {
		l.client = client
	}
}

// NewLocator creates a device location resolver.
func NewLocator(opts ...LocatorOption) *Locator {
	l := &Locator{
		url:     DefaultLocatorURL,
		timeout: DefaultLocatorTimeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{Timeout: l.timeout}
	}

	return l
}

// locatorResponse is the ip-api.com JSON shape, trimmed to what we use.
type locatorResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// Locate resolves the device location. Failures wrap ErrUnavailable; the
// caller surfaces them with a manual retry action, never an automatic one.
func (l *Locator) Locate(ctx context.Context) (Selection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req.Header.Set("User-Agent", "ls-moonwatch/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Selection{}, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	var body locatorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Selection{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if body.Status != "success" {
		return Selection{}, fmt.Errorf("%w: %s", ErrUnavailable, body.Message)
	}

	coord := moon.Coordinate{LatDeg: body.Lat, LonDeg: body.Lon}
	if err := coord.Validate(); err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	name := body.City
	if name != "" && body.Country != "" {
		name += ", " + body.Country
	} else if name == "" {
		name = body.Country
	}

	return Selection{
		Kind:       KindDevice,
		Name:       name,
		Coordinate: coord,
	}, nil
}
