// Package ingest fetches raw payloads from the advisory backend and runs
// them through the normalizers. Public fetch methods never surface transport
// or decoding errors to their callers: failures are logged and an empty typed
// value is returned, with the road-risk endpoint additionally falling back to
// an embedded static dataset.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ynn22/citywind/internal/httputil"
	"github.com/ynn22/citywind/internal/metrics"
	"github.com/ynn22/citywind/internal/models"
	"github.com/ynn22/citywind/internal/normalize"
)

// DefaultBaseURL is the hosted advisory backend.
const DefaultBaseURL = "https://ynn22-standing-backend.hf.space"

// VisitorID is the reporter sentinel used when no host-shell identity is
// available.
const VisitorID = "visitor"

const retryMaxElapsed = 30 * time.Second

// IdentityProvider resolves the reporting user's id. bridge.Identity
// satisfies this; a nil provider resolves to VisitorID.
type IdentityProvider interface {
	UserID(ctx context.Context) string
}

// Client talks to the advisory backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	identity   IdentityProvider
	loc        *time.Location

	// roadRiskFallback is the static dataset used when the road-risk
	// endpoint is unreachable. Tests may override it.
	roadRiskFallback []byte
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithIdentity wires the host-shell identity bridge used for issue reporting.
func WithIdentity(p IdentityProvider) Option {
	return func(c *Client) { c.identity = p }
}

// WithLocation sets the timezone used for forecast window extraction.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithRoadRiskFallback replaces the embedded road-risk fallback dataset.
func WithRoadRiskFallback(data []byte) Option {
	return func(c *Client) { c.roadRiskFallback = data }
}

// NewClient creates a backend client. An empty baseURL selects the hosted
// backend; a nil logger discards nothing and defaults to slog.Default().
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:          baseURL,
		httpClient:       httputil.NewClient(),
		logger:           logger,
		loc:              time.Local,
		roadRiskFallback: roadRiskFallbackJSON,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPoliceNews returns normalized police road bulletins, or an empty list
// when the endpoint is unreachable or returns an unexpected payload.
func (c *Client) FetchPoliceNews(ctx context.Context) []models.NewsItem {
	body, err := c.get(ctx, "/news/police_local", nil)
	if err != nil {
		c.logger.Warn("police news fetch failed", "error", err)
		return []models.NewsItem{}
	}

	records := resolveRecordEnvelope[normalize.PoliceNewsRecord](body)
	return normalize.PoliceNews(records)
}

// FetchWindStations returns the current station snapshots, or an empty list
// on failure.
func (c *Client) FetchWindStations(ctx context.Context) []models.WindStation {
	body, err := c.get(ctx, "/wind/", nil)
	if err != nil {
		c.logger.Warn("wind station fetch failed", "error", err)
		return []models.WindStation{}
	}

	var stations []models.WindStation
	if err := json.Unmarshal(body, &stations); err != nil {
		c.logger.Warn("wind station payload malformed", "error", err)
		return []models.WindStation{}
	}
	return stations
}

// FetchFutureWind returns the rolling forecast window for a district. On any
// failure the forecast comes back with the normalized district hint and no
// entries.
func (c *Client) FetchFutureWind(ctx context.Context, district string, hoursLimit int) models.FutureWindForecast {
	empty := models.FutureWindForecast{District: normalize.NormalizeDistrict(district)}

	body, err := c.get(ctx, "/wind/future", nil)
	if err != nil {
		c.logger.Warn("future wind fetch failed", "error", err)
		return empty
	}

	var payload normalize.FutureWindPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("future wind payload malformed", "error", err)
		return empty
	}
	return normalize.FutureWind(payload, district, hoursLimit, c.loc)
}

// FetchRoadRisk returns normalized route segments for a risk level. The
// fallback chain is two-level: remote endpoint, then the embedded static
// dataset, then an empty list. Each stage is fully attempted, parse
// included, before falling through.
func (c *Client) FetchRoadRisk(ctx context.Context, riskLevel int) []models.SafeRouteSegment {
	query := url.Values{
		"risk_level": {fmt.Sprint(riskLevel)},
		"use_cache":  {"true"},
	}

	body, err := c.get(ctx, "/map/analyze_road_risk", query)
	if err == nil {
		if records := normalize.ResolveRoadRiskPayload(body); records != nil {
			return normalize.RoadRisk(records, riskLevel)
		}
		c.logger.Warn("road risk payload malformed, using fallback dataset")
	} else {
		c.logger.Warn("road risk fetch failed, using fallback dataset", "error", err)
	}
	metrics.FallbacksTotal.WithLabelValues("road_risk", "static").Inc()

	if records := normalize.ResolveRoadRiskPayload(c.roadRiskFallback); records != nil {
		return normalize.RoadRisk(records, riskLevel)
	}

	c.logger.Warn("road risk fallback dataset malformed")
	metrics.FallbacksTotal.WithLabelValues("road_risk", "empty").Inc()
	return []models.SafeRouteSegment{}
}

// get issues a GET with retry. Rate-limit style statuses (429/403/401) are
// retried with exponential backoff; other failures are permanent.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + endpoint
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var body []byte
	operation := func() error {
		start := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("User-Agent", "citywind/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.BackendAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
			return backoff.Permanent(fmt.Errorf("fetch %s: %w", endpoint, err))
		}
		defer resp.Body.Close()

		metrics.BackendAPICallsTotal.WithLabelValues(endpoint, fmt.Sprint(resp.StatusCode)).Inc()
		metrics.BackendAPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("rate limited: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("fetch %s: status %d: %s", endpoint, resp.StatusCode, string(b)))
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read body: %w", err))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = retryMaxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

// resolveRecordEnvelope unwraps the array-or-{data:[...]} envelope shared by
// the news and issue endpoints.
func resolveRecordEnvelope[T any](payload []byte) []T {
	var bare []T
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		return envelope.Data
	}
	return nil
}
