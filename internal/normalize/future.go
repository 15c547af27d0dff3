package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ynn22/citywind/internal/models"
)

// timestampLayout is the backend's forecast key format, e.g. 20250101T150000.
const timestampLayout = "20060102T150405"

var speedValueRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ForecastSlot is one raw timestamped forecast reading. The backend keys
// slot fields with the CWA Chinese element names.
type ForecastSlot struct {
	Weather             string `json:"天氣現象"`
	WindDirection       string `json:"風向"`
	RainProbability     string `json:"3小時降雨機率"`
	Temperature         string `json:"溫度"`
	WindSpeed           string `json:"風速"`
	Humidity            string `json:"相對濕度"`
	ApparentTemperature string `json:"體感溫度"`
}

// FutureWindPayload maps district name → timestamp key → forecast slot.
type FutureWindPayload map[string]map[string]ForecastSlot

// NormalizeDistrict canonicalizes district names before comparison. Backend
// records mix the legacy 台 character with the official 臺.
func NormalizeDistrict(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "台", "臺")
}

// FutureWind extracts the rolling forecast window for one district.
//
// The district is chosen by exact match on the normalized hint, falling back
// to the lexicographically first available district so the result is stable
// regardless of map iteration order. Timestamp keys are cleaned of every
// non-digit rune except T, parsed as YYYYMMDDTHHmmss in loc, and restricted
// to [now, now+hoursLimit]; malformed keys are skipped. Entries come back
// ascending by timestamp, capped at max(16, hoursLimit/3).
func FutureWind(payload FutureWindPayload, districtHint string, hoursLimit int, loc *time.Location) models.FutureWindForecast {
	if loc == nil {
		loc = time.Local
	}
	if hoursLimit <= 0 {
		hoursLimit = 48
	}

	hint := NormalizeDistrict(districtHint)
	forecast := models.FutureWindForecast{District: hint}

	district, slots := pickDistrict(payload, hint)
	if slots == nil {
		return forecast
	}
	forecast.District = district

	now := clock.Now().In(loc)
	windowEnd := now.Add(time.Duration(hoursLimit) * time.Hour)

	entries := make([]models.ForecastEntry, 0, len(slots))
	for key, slot := range slots {
		ts, ok := parseTimestampKey(key, loc)
		if !ok {
			continue
		}
		if ts.Before(now) || ts.After(windowEnd) {
			continue
		}
		entries = append(entries, models.ForecastEntry{
			Timestamp:           ts,
			DisplayTime:         ts.Format("01/02 15:04"),
			Weather:             slot.Weather,
			WindDirection:       WindDirection(slot.WindDirection),
			RainProbability:     slot.RainProbability,
			Temperature:         slot.Temperature,
			WindSpeedText:       slot.WindSpeed,
			WindSpeedValue:      windSpeedValue(slot.WindSpeed),
			Humidity:            slot.Humidity,
			ApparentTemperature: slot.ApparentTemperature,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	maxEntries := hoursLimit / 3
	if maxEntries < 16 {
		maxEntries = 16
	}
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	forecast.Entries = entries
	return forecast
}

func pickDistrict(payload FutureWindPayload, hint string) (string, map[string]ForecastSlot) {
	names := make([]string, 0, len(payload))
	for name := range payload {
		if NormalizeDistrict(name) == hint {
			return hint, payload[name]
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return hint, nil
	}
	sort.Strings(names)
	return NormalizeDistrict(names[0]), payload[names[0]]
}

// parseTimestampKey strips every rune other than digits and T, then parses
// the remainder as a forecast timestamp in loc.
func parseTimestampKey(key string, loc *time.Location) (time.Time, bool) {
	var b strings.Builder
	for _, r := range key {
		if (r >= '0' && r <= '9') || r == 'T' {
			b.WriteRune(r)
		}
	}
	ts, err := time.ParseInLocation(timestampLayout, b.String(), loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// windSpeedValue pulls the first integer or decimal substring out of a
// free-text speed field such as "≥11 m/s" or "6-8公尺/秒". Absence yields 0.
func windSpeedValue(text string) float64 {
	match := speedValueRe.FindString(text)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}
