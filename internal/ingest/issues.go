package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ynn22/citywind/internal/metrics"
	"github.com/ynn22/citywind/internal/models"
	"github.com/ynn22/citywind/internal/normalize"
)

// CreateIssue submits an obstacle report. The reporter id comes from the
// identity bridge, defaulting to the visitor sentinel. Failures are reported
// through SubmitResult, never as an error.
func (c *Client) CreateIssue(ctx context.Context, address, obstacleType, description string) models.SubmitResult {
	query := url.Values{
		"address":          {address},
		"obstacle_type":    {obstacleType},
		"description":      {description},
		"modtified_userid": {c.reporterID(ctx)},
	}
	return c.post(ctx, "/issue/create", query)
}

// IssuesByStatus returns obstacle reports in the given lifecycle state, or an
// empty list on failure.
func (c *Client) IssuesByStatus(ctx context.Context, status models.IssueStatus) []models.ObstacleIssueRecord {
	body, err := c.get(ctx, "/issue/getByStatus", url.Values{"status": {string(status)}})
	if err != nil {
		c.logger.Warn("issue fetch failed", "status", status, "error", err)
		return []models.ObstacleIssueRecord{}
	}

	records := resolveRecordEnvelope[normalize.IssueRecord](body)
	return normalize.Issues(records)
}

// UpdateIssue moves an obstacle report to a new lifecycle state.
func (c *Client) UpdateIssue(ctx context.Context, issueID string, status models.IssueStatus) models.SubmitResult {
	query := url.Values{
		"issue_id":         {issueID},
		"status":           {string(status)},
		"modtified_userid": {c.reporterID(ctx)},
	}
	return c.post(ctx, "/issue/update", query)
}

func (c *Client) reporterID(ctx context.Context) string {
	if c.identity == nil {
		return VisitorID
	}
	if id := c.identity.UserID(ctx); id != "" {
		return id
	}
	return VisitorID
}

// post issues a query-string encoded POST and folds the outcome into a
// SubmitResult. The backend takes submission parameters in the query string,
// not the body.
func (c *Client) post(ctx context.Context, endpoint string, query url.Values) models.SubmitResult {
	fullURL := c.baseURL + endpoint + "?" + query.Encode()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, nil)
	if err != nil {
		return models.SubmitResult{Success: false, Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("User-Agent", "citywind/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("issue submit failed", "endpoint", endpoint, "error", err)
		metrics.BackendAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return models.SubmitResult{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	metrics.BackendAPICallsTotal.WithLabelValues(endpoint, fmt.Sprint(resp.StatusCode)).Inc()
	metrics.BackendAPILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	body, _ := io.ReadAll(resp.Body)
	result := models.SubmitResult{
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if json.Valid(body) {
		result.Raw = json.RawMessage(body)
	}
	if !result.Success {
		c.logger.Warn("issue submit rejected", "endpoint", endpoint, "status", resp.StatusCode)
		result.Message = fmt.Sprintf("status %d", resp.StatusCode)
	}

	// Surface a backend-provided message when one exists.
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		result.Message = payload.Message
	}

	return result
}
