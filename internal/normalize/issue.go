package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ynn22/citywind/internal/models"
)

// IssueRecord is one raw obstacle report. Field names vary between backend
// revisions, so alternates are carried alongside the preferred spelling.
type IssueRecord struct {
	IssueID      json.RawMessage `json:"issue_id"`
	ID           json.RawMessage `json:"id"`
	Address      string          `json:"address"`
	ObstacleType string          `json:"obstacle_type"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Time         string          `json:"time"`
	CreatedAt    string          `json:"created_at"`
	Status       string          `json:"status"`
	ModtifiedBy  string          `json:"modtified_userid"`
	ReporterID   string          `json:"reporter_id"`
}

// Issues normalizes raw obstacle reports. Ids tolerate both numeric and
// string encodings; the reporter falls back through the two known field
// spellings.
func Issues(records []IssueRecord) []models.ObstacleIssueRecord {
	issues := make([]models.ObstacleIssueRecord, 0, len(records))
	for i, record := range records {
		id := stringValue(record.IssueID)
		if id == "" {
			id = stringValue(record.ID)
		}
		if id == "" {
			id = "issue-" + strconv.Itoa(i+1)
		}

		issueType := record.ObstacleType
		if issueType == "" {
			issueType = record.Type
		}

		reportedAt := record.Time
		if reportedAt == "" {
			reportedAt = record.CreatedAt
		}

		reporter := record.ModtifiedBy
		if reporter == "" {
			reporter = record.ReporterID
		}

		issues = append(issues, models.ObstacleIssueRecord{
			ID:          id,
			Address:     strings.TrimSpace(record.Address),
			Type:        issueType,
			Description: strings.TrimSpace(record.Description),
			Time:        reportedAt,
			Status:      models.ParseIssueStatus(record.Status),
			ReporterID:  reporter,
		})
	}
	return issues
}

// stringValue coerces a JSON string or number field into its string form.
func stringValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
