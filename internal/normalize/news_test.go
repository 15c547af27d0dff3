package normalize

import (
	"testing"
)

func TestPoliceNewsPreservesPopulatedFields(t *testing.T) {
	records := []PoliceNewsRecord{
		{
			RoadType:   "國道一號北上",
			Comment:    "事故處理中，請改道行駛。",
			HappenTime: "2025-06-01 08:30",
			Image:      "https://example.com/a.jpg",
		},
	}

	items := PoliceNews(records)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ID != 1 {
		t.Errorf("id = %d, want 1", item.ID)
	}
	if item.Title != "國道一號北上" {
		t.Errorf("title = %q", item.Title)
	}
	if item.Description != "事故處理中，請改道行駛。" {
		t.Errorf("description = %q", item.Description)
	}
	if item.Time != "2025-06-01 08:30" {
		t.Errorf("time = %q", item.Time)
	}
	if item.Thumbnail != "https://example.com/a.jpg" {
		t.Errorf("thumbnail = %q", item.Thumbnail)
	}
}

func TestPoliceNewsPlaceholders(t *testing.T) {
	tests := []struct {
		name   string
		record PoliceNewsRecord
	}{
		{"all missing", PoliceNewsRecord{}},
		{"all whitespace", PoliceNewsRecord{RoadType: "  ", Comment: "\t", HappenTime: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := PoliceNews([]PoliceNewsRecord{tt.record})
			if len(items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(items))
			}
			item := items[0]
			if item.Title != NewsTitleFallback {
				t.Errorf("title = %q, want %q", item.Title, NewsTitleFallback)
			}
			if item.Description != NewsDescriptionFallback {
				t.Errorf("description = %q, want %q", item.Description, NewsDescriptionFallback)
			}
			if item.Time != NewsTimeFallback {
				t.Errorf("time = %q, want %q", item.Time, NewsTimeFallback)
			}
		})
	}
}

func TestPoliceNewsAssignsPositionalIDs(t *testing.T) {
	items := PoliceNews([]PoliceNewsRecord{{}, {}, {}})
	for i, item := range items {
		if item.ID != i+1 {
			t.Errorf("item %d has id %d", i, item.ID)
		}
	}
}

func TestPoliceNewsEmptyInput(t *testing.T) {
	if items := PoliceNews(nil); len(items) != 0 {
		t.Fatalf("expected empty output, got %d items", len(items))
	}
}
