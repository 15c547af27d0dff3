// Package geocode wraps the Google Geocoding API with the degradation rules
// the dashboard relies on: without an API key, reverse lookups render the
// coordinate itself and forward lookups report the capability as unavailable.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ynn22/citywind/internal/httputil"
	"github.com/ynn22/citywind/internal/metrics"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Client calls the Google geocoding endpoint. A zero API key disables remote
// lookups without disabling the client.
type Client struct {
	apiKey     string
	language   string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a geocoding client. language selects the address
// language, e.g. zh-TW.
func NewClient(apiKey, language string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		apiKey:     apiKey,
		language:   language,
		baseURL:    defaultBaseURL,
		httpClient: httputil.NewClient(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// coordinateLabel is the keyless/failed-lookup rendering of a point.
func coordinateLabel(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Reverse resolves a coordinate to an address. Every failure mode — missing
// key, transport error, non-OK status, empty result set — degrades to the
// coordinate formatted to five decimal places.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) string {
	if c.apiKey == "" {
		return coordinateLabel(lat, lng)
	}

	query := url.Values{
		"latlng":   {fmt.Sprintf("%v,%v", lat, lng)},
		"key":      {c.apiKey},
		"language": {c.language},
	}
	payload, err := c.fetch(ctx, query, "reverse")
	if err != nil {
		c.logger.Warn("reverse geocode failed", "error", err)
		return coordinateLabel(lat, lng)
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return coordinateLabel(lat, lng)
	}
	return payload.Results[0].FormattedAddress
}

// Forward resolves a free-text query to a coordinate. It returns nil when
// the capability is unavailable (no API key), the query is blank, or the
// lookup fails.
func (c *Client) Forward(ctx context.Context, query string) *LatLng {
	if c.apiKey == "" || query == "" {
		return nil
	}

	params := url.Values{
		"address":  {query},
		"key":      {c.apiKey},
		"language": {c.language},
	}
	payload, err := c.fetch(ctx, params, "forward")
	if err != nil {
		c.logger.Warn("forward geocode failed", "query", query, "error", err)
		return nil
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil
	}
	loc := payload.Results[0].Geometry.Location
	return &loc
}

func (c *Client) fetch(ctx context.Context, query url.Values, direction string) (*geocodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GeocodeCallsTotal.WithLabelValues(direction, "error").Inc()
		return nil, fmt.Errorf("%s geocode request: %w", direction, err)
	}
	defer resp.Body.Close()

	metrics.GeocodeCallsTotal.WithLabelValues(direction, fmt.Sprint(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocode API error: status %d: %s", resp.StatusCode, body)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}
