package normalize

import (
	"encoding/json"
	"testing"
)

func mustRecords(t *testing.T, payload string) []RoadRiskRecord {
	t.Helper()
	var records []RoadRiskRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		t.Fatalf("unmarshal test payload: %v", err)
	}
	return records
}

func TestResolveRoadRiskPayloadShapes(t *testing.T) {
	record := `{"id":"r1","start_lat":25.03,"start_lng":121.56,"end_lat":25.04,"end_lng":121.57}`

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"bare array", `[` + record + `]`, 1},
		{"roads envelope", `{"roads":[` + record + `]}`, 1},
		{"data.roads envelope", `{"data":{"roads":[` + record + `]}}`, 1},
		{"data array envelope", `{"data":[` + record + `]}`, 1},
		{"empty object", `{}`, 0},
		{"unrelated object", `{"status":"ok"}`, 0},
		{"not json", `<html>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ResolveRoadRiskPayload([]byte(tt.payload))
			if len(records) != tt.want {
				t.Fatalf("got %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestRoadRiskMixedCoordinateEncodings(t *testing.T) {
	records := mustRecords(t, `[
		{
			"name": "信義路五段",
			"start": {"latitude": "25.0330", "longitude": "121.5654"},
			"end_lat": 25.0400,
			"end_lng": "121.5700",
			"wind_speed": "8.5",
			"wind_direction": "東北風",
			"risk_level": 4,
			"note": "注意側風"
		}
	]`)

	segments := RoadRisk(records, 5)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}

	seg := segments[0]
	if seg.StartLat != 25.0330 || seg.StartLng != 121.5654 {
		t.Errorf("start = %v,%v", seg.StartLat, seg.StartLng)
	}
	if seg.EndLat != 25.0400 || seg.EndLng != 121.5700 {
		t.Errorf("end = %v,%v", seg.EndLat, seg.EndLng)
	}
	if seg.WindSpeed != 8.5 {
		t.Errorf("wind speed = %v", seg.WindSpeed)
	}
	if seg.RiskLevel != 4 {
		t.Errorf("risk level = %d", seg.RiskLevel)
	}
	if seg.Note != "注意側風" {
		t.Errorf("note = %q", seg.Note)
	}
}

func TestRoadRiskDropsUnresolvableRecords(t *testing.T) {
	records := mustRecords(t, `[
		{"name":"有頭無尾","start_lat":25.03,"start_lng":121.56},
		{"name":"正常","start_lat":25.03,"start_lng":121.56,"end_lat":25.04,"end_lng":121.57},
		{"name":"座標不是數字","start_lat":"abc","start_lng":121.56,"end_lat":25.04,"end_lng":121.57}
	]`)

	segments := RoadRisk(records, 5)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Name != "正常" {
		t.Errorf("kept wrong segment: %q", segments[0].Name)
	}
}

func TestRoadRiskSynthesizedIDAndDefaultRisk(t *testing.T) {
	records := mustRecords(t, `[
		{"start_lat":25.03,"start_lng":121.56,"end_lat":25.04,"end_lng":121.57},
		{"start_lat":25.05,"start_lng":121.50,"end_lat":25.06,"end_lng":121.51}
	]`)

	segments := RoadRisk(records, 3)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].ID != "risk-3-0" {
		t.Errorf("id = %q, want risk-3-0", segments[0].ID)
	}
	if segments[1].ID != "risk-3-1" {
		t.Errorf("id = %q, want risk-3-1", segments[1].ID)
	}
	if segments[0].RiskLevel != 3 {
		t.Errorf("risk level = %d, want default 3", segments[0].RiskLevel)
	}
}

func TestRoadRiskKeepsProvidedID(t *testing.T) {
	records := mustRecords(t, `[
		{"id":"seg-99","start_lat":25.03,"start_lng":121.56,"end_lat":25.04,"end_lng":121.57,"risk_level":"2"}
	]`)

	segments := RoadRisk(records, 5)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].ID != "seg-99" {
		t.Errorf("id = %q", segments[0].ID)
	}
	if segments[0].RiskLevel != 2 {
		t.Errorf("risk level = %d, want 2 from numeric string", segments[0].RiskLevel)
	}
}

func TestNumericValueCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"number", `25.03`, ptr(25.03)},
		{"numeric string", `"25.03"`, ptr(25.03)},
		{"padded numeric string", `"  7 "`, ptr(7)},
		{"word string", `"abc"`, nil},
		{"bool", `true`, nil},
		{"null", `null`, nil},
		{"object", `{"v":1}`, nil},
		{"empty", ``, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numericValue(json.RawMessage(tt.raw))
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("got %v, want %v", *got, *tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
