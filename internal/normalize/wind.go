package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ynn22/citywind/internal/models"
)

// DirectionFallback is shown while a station has no wind direction reading.
const DirectionFallback = "風向更新中"

// Risk is a 1-5 severity classification derived from wind speed.
type Risk struct {
	Level int
	Label string
}

// MapSpeedToRisk classifies a wind speed in m/s. The thresholds are the
// product's single piece of derived business logic and must not drift:
// <4 → 1, <8 → 2, <12 → 3, <16 → 4, else 5.
func MapSpeedToRisk(speed float64) Risk {
	switch {
	case speed < 4:
		return Risk{Level: 1, Label: "低風險"}
	case speed < 8:
		return Risk{Level: 2, Label: "低中風險"}
	case speed < 12:
		return Risk{Level: 3, Label: "中度風險"}
	case speed < 16:
		return Risk{Level: 4, Label: "中高風險"}
	default:
		return Risk{Level: 5, Label: "高風險"}
	}
}

// WindDirection normalizes a free-text direction label. Blank input yields
// the updating placeholder; otherwise the suffix 風 is appended unless the
// text already contains it.
func WindDirection(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DirectionFallback
	}
	if strings.Contains(trimmed, "風") {
		return trimmed
	}
	return trimmed + "風"
}

// WindIntensity maps a wind speed onto a 0-100 gauge value, saturating at
// 20 m/s.
func WindIntensity(speed float64) int {
	intensity := int(math.Round(speed / 20 * 100))
	if intensity < 0 {
		return 0
	}
	if intensity > 100 {
		return 100
	}
	return intensity
}

// WindReading is the pair of view models derived from one station snapshot.
type WindReading struct {
	Info   models.WindInfo
	Detail models.WindDetail
}

// BuildWindReading derives the home-overview WindInfo and the wind-detail
// view model from a station snapshot. Missing optional readings render as
// "--"; station pressure is not reported by the backend.
func BuildWindReading(station models.WindStation) WindReading {
	risk := MapSpeedToRisk(station.WindSpeed)
	direction := WindDirection(station.WindDirection)

	temperature := "--"
	if station.AirTemperature != nil {
		temperature = fmt.Sprintf("%.1f", *station.AirTemperature)
	}
	humidity := "--"
	if station.RelativeHumidity != nil {
		humidity = fmt.Sprintf("%.0f%%", *station.RelativeHumidity)
	}

	location := fmt.Sprintf("%s（%s）", station.StationName, station.County)
	if station.Town != "" {
		location = fmt.Sprintf("%s（%s·%s）", station.StationName, station.County, station.Town)
	}

	return WindReading{
		Info: models.WindInfo{
			Speed:       fmt.Sprintf("%.1f", station.WindSpeed),
			Unit:        "m/s",
			Direction:   direction,
			Intensity:   WindIntensity(station.WindSpeed),
			Temperature: temperature,
			Humidity:    humidity,
			Pressure:    "—",
		},
		Detail: models.WindDetail{
			Location:  location,
			WindSpeed: station.WindSpeed,
			Unit:      "m/s",
			UpdatedAt: clock.Now().Format(time.RFC3339),
			Source:    fmt.Sprintf("資料來源：%s測站", station.StationName),
			AvgWind:   station.WindSpeed,
			Direction: direction,
			RiskLevel: risk.Level,
			RiskLabel: risk.Label,
		},
	}
}
