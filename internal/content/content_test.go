package content

import "testing"

func TestSafeNavigationSeedsCarryCoordinates(t *testing.T) {
	data := GetSafeNavigationData("")
	if len(data.Segments) == 0 {
		t.Fatal("expected seed segments")
	}
	for _, seg := range data.Segments {
		if seg.StartLat == 0 || seg.StartLng == 0 || seg.EndLat == 0 || seg.EndLng == 0 {
			t.Errorf("segment %s missing coordinates", seg.ID)
		}
		if seg.RiskLevel < 1 || seg.RiskLevel > 5 {
			t.Errorf("segment %s risk level %d out of range", seg.ID, seg.RiskLevel)
		}
		if seg.Note == "" {
			t.Errorf("segment %s missing note", seg.ID)
		}
	}
}

func TestEmbedOverrides(t *testing.T) {
	if got := GetHomeOverview("").GoogleMapEmbed; got != HomeMapEmbed {
		t.Errorf("default home embed not applied")
	}
	if got := GetHomeOverview("https://example.com/custom").GoogleMapEmbed; got != "https://example.com/custom" {
		t.Errorf("embed override ignored: %q", got)
	}
	if got := GetObstacleReportData("").MapEmbedURL; got != ObstacleMapEmbed {
		t.Errorf("default obstacle embed not applied")
	}
}

func TestTrafficPresetsCoverAllTabs(t *testing.T) {
	presets := GetTrafficLayerPresets()
	for _, tab := range GetTrafficTabs() {
		if _, ok := presets[tab.ID]; !ok {
			t.Errorf("no preset for tab %s", tab.ID)
		}
	}
}

func TestWindDetailSeed(t *testing.T) {
	detail := GetWindDetail()
	if detail.RiskLevel != 3 || detail.RiskLabel != "中度風險" {
		t.Errorf("unexpected default risk: %d %q", detail.RiskLevel, detail.RiskLabel)
	}
	if len(detail.Trend) != 9 {
		t.Errorf("expected 9 trend points, got %d", len(detail.Trend))
	}
}
