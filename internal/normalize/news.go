// Package normalize turns loosely-typed backend records into the canonical
// view models in internal/models. Every normalizer is a pure, total function:
// malformed input yields a best-effort record with documented placeholder
// values, never an error. The UI must always have something to render.
package normalize

import (
	"strings"

	"github.com/ynn22/citywind/internal/models"
)

// Placeholder text substituted for blank or missing police-news fields.
const (
	NewsTitleFallback       = "最新路況資訊"
	NewsDescriptionFallback = "暫無補充說明。"
	NewsTimeFallback        = "剛剛更新"
)

// PoliceNewsRecord is the raw shape of one police road-condition bulletin.
type PoliceNewsRecord struct {
	RoadType   string `json:"roadtype"`
	Comment    string `json:"comment"`
	HappenTime string `json:"happentime"`
	Image      string `json:"image"`
}

// PoliceNews maps raw bulletins onto NewsItems. IDs are 1-based positions;
// blank or whitespace-only source fields fall back to placeholder text.
func PoliceNews(records []PoliceNewsRecord) []models.NewsItem {
	items := make([]models.NewsItem, 0, len(records))
	for i, record := range records {
		items = append(items, models.NewsItem{
			ID:          i + 1,
			Title:       fallback(record.RoadType, NewsTitleFallback),
			Description: fallback(record.Comment, NewsDescriptionFallback),
			Time:        fallback(record.HappenTime, NewsTimeFallback),
			Thumbnail:   record.Image,
		})
	}
	return items
}

func fallback(value, placeholder string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return placeholder
}
