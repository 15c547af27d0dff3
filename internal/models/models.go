package models

import (
	"encoding/json"
	"strings"
	"time"
)

// WindStation is an observation snapshot from a single weather station as
// reported by the backend. Identity is StationID; a fresh set is fetched on
// every request and never mutated afterwards.
type WindStation struct {
	StationName         string   `json:"station_name"`
	StationID           string   `json:"station_id"`
	County              string   `json:"county"`
	Town                string   `json:"town"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	Weather             string   `json:"weather,omitempty"`
	WindSpeed           float64  `json:"wind_speed"`
	WindDirectionDegree *float64 `json:"wind_direction_degree,omitempty"`
	WindDirection       string   `json:"wind_direction,omitempty"`
	AirTemperature      *float64 `json:"air_temperature,omitempty"`
	RelativeHumidity    *float64 `json:"relative_humidity,omitempty"`
}

// WindInfo is the compact current-conditions view model shown on the home
// overview. All fields are pre-formatted display strings except Intensity,
// which is a 0-100 gauge value.
type WindInfo struct {
	Speed       string `json:"speed"`
	Unit        string `json:"unit"`
	Direction   string `json:"direction"`
	Intensity   int    `json:"intensity"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
}

// TrendPoint is one sample on the wind-detail trend chart.
type TrendPoint struct {
	Hour  int     `json:"hour"`
	Value float64 `json:"value"`
}

// WindDetail is the full wind-detail view model.
type WindDetail struct {
	Location  string       `json:"location"`
	WindSpeed float64      `json:"windSpeed"`
	Unit      string       `json:"unit"`
	UpdatedAt string       `json:"updatedAt"`
	Source    string       `json:"source"`
	MaxWind   float64      `json:"maxWind"`
	AvgWind   float64      `json:"avgWind"`
	Direction string       `json:"direction"`
	RiskLevel int          `json:"riskLevel"`
	RiskLabel string       `json:"riskLabel"`
	Trend     []TrendPoint `json:"trend"`
}

// NewsItem is a normalized police road-condition bulletin. Every field is
// guaranteed non-empty except Thumbnail.
type NewsItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time,omitempty"`
	Source      string `json:"source,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// SafeRouteSegment is one scored segment of a recommended route. Segments
// always carry resolved start and end coordinates; records where either end
// cannot be resolved are dropped during normalization.
type SafeRouteSegment struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StartLat  float64 `json:"start_lat"`
	StartLng  float64 `json:"start_lng"`
	EndLat    float64 `json:"end_lat"`
	EndLng    float64 `json:"end_lng"`
	WindSpeed float64 `json:"windSpeed"`
	Direction string  `json:"direction"`
	RiskLevel int     `json:"riskLevel"`
	Note      string  `json:"note"`
}

// IssueStatus is the lifecycle state of an obstacle report.
type IssueStatus string

const (
	IssueUnsolved   IssueStatus = "Unsolved"
	IssueResolved   IssueStatus = "Resolved"
	IssueInProgress IssueStatus = "InProgress"
)

// ParseIssueStatus maps loose backend status strings onto the canonical set.
// Unknown values resolve to Unsolved so a report is never silently hidden.
func ParseIssueStatus(s string) IssueStatus {
	switch strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.TrimSpace(s))) {
	case "resolved", "solved", "done":
		return IssueResolved
	case "inprogress", "processing":
		return IssueInProgress
	default:
		return IssueUnsolved
	}
}

// ObstacleIssueRecord is a normalized obstacle report.
type ObstacleIssueRecord struct {
	ID          string      `json:"id"`
	Address     string      `json:"address"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Time        string      `json:"time"`
	Status      IssueStatus `json:"status"`
	ReporterID  string      `json:"reporterId"`
}

// SubmitResult reports the outcome of an obstacle submission or update.
// Callers must check Success; submission failures are values, not errors.
type SubmitResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// ForecastEntry is one timestamped slot of a district wind forecast.
type ForecastEntry struct {
	Timestamp           time.Time `json:"timestamp"`
	DisplayTime         string    `json:"displayTime"`
	Weather             string    `json:"weather"`
	WindDirection       string    `json:"windDirection"`
	RainProbability     string    `json:"rainProbability"`
	Temperature         string    `json:"temperature"`
	WindSpeedText       string    `json:"windSpeedText"`
	WindSpeedValue      float64   `json:"windSpeedValue"`
	Humidity            string    `json:"humidity"`
	ApparentTemperature string    `json:"apparentTemperature"`
}

// FutureWindForecast is the rolling per-district forecast window. Entries are
// sorted ascending by timestamp and restricted to the configured window.
type FutureWindForecast struct {
	District string          `json:"district"`
	Entries  []ForecastEntry `json:"entries"`
}
