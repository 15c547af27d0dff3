package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ynn22/citywind/internal/models"
)

// RoadRiskCoord is a nested coordinate object. The backend is inconsistent
// about short vs long field names, so both spellings are accepted.
type RoadRiskCoord struct {
	Lat       json.RawMessage `json:"lat"`
	Latitude  json.RawMessage `json:"latitude"`
	Lng       json.RawMessage `json:"lng"`
	Longitude json.RawMessage `json:"longitude"`
}

// RoadRiskRecord is one raw road-risk analysis record. Coordinates arrive
// either flat (start_lat/start_lng) or nested (start:{lat,lng}); numeric
// fields may be JSON numbers or numeric strings.
type RoadRiskRecord struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	StartLat      json.RawMessage `json:"start_lat"`
	StartLng      json.RawMessage `json:"start_lng"`
	EndLat        json.RawMessage `json:"end_lat"`
	EndLng        json.RawMessage `json:"end_lng"`
	Start         *RoadRiskCoord  `json:"start"`
	End           *RoadRiskCoord  `json:"end"`
	WindSpeed     json.RawMessage `json:"wind_speed"`
	WindDirection string          `json:"wind_direction"`
	RiskLevel     json.RawMessage `json:"risk_level"`
	Note          string          `json:"note"`
	Description   string          `json:"description"`
}

// ResolveRoadRiskPayload unwraps the road-risk response envelope. The backend
// has shipped four shapes over time; they are tried in a fixed priority
// order and the first structural match wins:
//
//	[...]  →  {"roads":[...]}  →  {"data":{"roads":[...]}}  →  {"data":[...]}
//
// Anything else resolves to an empty record set.
func ResolveRoadRiskPayload(payload []byte) []RoadRiskRecord {
	var bare []RoadRiskRecord
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare
	}

	var envelope struct {
		Roads json.RawMessage `json:"roads"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil
	}

	if len(envelope.Roads) > 0 {
		var roads []RoadRiskRecord
		if err := json.Unmarshal(envelope.Roads, &roads); err == nil {
			return roads
		}
	}

	if len(envelope.Data) > 0 {
		var nested struct {
			Roads []RoadRiskRecord `json:"roads"`
		}
		if err := json.Unmarshal(envelope.Data, &nested); err == nil && nested.Roads != nil {
			return nested.Roads
		}
		var list []RoadRiskRecord
		if err := json.Unmarshal(envelope.Data, &list); err == nil {
			return list
		}
	}

	return nil
}

// RoadRisk normalizes raw records into route segments. Records missing a
// resolvable start or end coordinate are dropped rather than emitted with
// zero coordinates. defaultRisk is used when the record carries no level of
// its own; synthesized ids follow the risk-{level}-{index} convention.
func RoadRisk(records []RoadRiskRecord, defaultRisk int) []models.SafeRouteSegment {
	segments := make([]models.SafeRouteSegment, 0, len(records))
	for i, record := range records {
		startLat := coordValue(record.StartLat, record.Start, false)
		startLng := coordValue(record.StartLng, record.Start, true)
		endLat := coordValue(record.EndLat, record.End, false)
		endLng := coordValue(record.EndLng, record.End, true)
		if startLat == nil || startLng == nil || endLat == nil || endLng == nil {
			continue
		}

		risk := defaultRisk
		if v := numericValue(record.RiskLevel); v != nil {
			risk = int(*v)
		}

		id := record.ID
		if id == "" {
			id = fmt.Sprintf("risk-%d-%d", risk, i)
		}

		var speed float64
		if v := numericValue(record.WindSpeed); v != nil {
			speed = *v
		}

		note := record.Note
		if note == "" {
			note = record.Description
		}

		segments = append(segments, models.SafeRouteSegment{
			ID:        id,
			Name:      record.Name,
			StartLat:  *startLat,
			StartLng:  *startLng,
			EndLat:    *endLat,
			EndLng:    *endLng,
			WindSpeed: speed,
			Direction: record.WindDirection,
			RiskLevel: risk,
			Note:      note,
		})
	}
	return segments
}

// coordValue resolves one coordinate component: the flat field wins, then the
// nested object's short name, then its long name.
func coordValue(flat json.RawMessage, nested *RoadRiskCoord, lng bool) *float64 {
	if v := numericValue(flat); v != nil {
		return v
	}
	if nested == nil {
		return nil
	}
	if lng {
		if v := numericValue(nested.Lng); v != nil {
			return v
		}
		return numericValue(nested.Longitude)
	}
	if v := numericValue(nested.Lat); v != nil {
		return v
	}
	return numericValue(nested.Latitude)
}

// numericValue is the tolerant numeric coercion shared by road-risk fields:
// finite JSON numbers and numeric strings pass, everything else yields nil.
func numericValue(raw json.RawMessage) *float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if math.IsNaN(asNumber) || math.IsInf(asNumber, 0) {
			return nil
		}
		return &asNumber
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(asString), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}
