// Package content is the static catalog behind the dashboard pages: the home
// overview, traffic layer presets, safe-navigation seed segments, obstacle
// report options, and the default wind detail. These values render whenever
// live backend data is unavailable, so the pages always have something to
// show.
package content

import (
	"time"

	"github.com/ynn22/citywind/internal/models"
)

// ServiceItem is one entry on the home service grid.
type ServiceItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Route    string `json:"route,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// MapPreview is the home page map card.
type MapPreview struct {
	Title       string `json:"title"`
	AddressHint string `json:"addressHint"`
	Road        string `json:"road"`
	Landmark    string `json:"landmark"`
	UpdatedAt   string `json:"updatedAt"`
}

// StreetInfo is the home page intersection card.
type StreetInfo struct {
	Intersection string `json:"intersection"`
	Status       string `json:"status"`
	Source       string `json:"source"`
}

// HomeOverview aggregates everything the home page renders.
type HomeOverview struct {
	Location       string            `json:"location"`
	Advisory       string            `json:"advisory"`
	WindInfo       models.WindInfo   `json:"windInfo"`
	DrivingAdvice  string            `json:"drivingAdvice"`
	Services       []ServiceItem     `json:"services"`
	MapPreview     MapPreview        `json:"mapPreview"`
	GoogleMapEmbed string            `json:"googleMapEmbed"`
	StreetInfo     StreetInfo        `json:"streetInfo"`
	NewsList       []models.NewsItem `json:"newsList"`
}

// GetHomeOverview returns the seeded home page model. The embed URL may be
// overridden by configuration; pass "" to use the bundled default.
func GetHomeOverview(embedURL string) HomeOverview {
	if embedURL == "" {
		embedURL = HomeMapEmbed
	}
	return HomeOverview{
		Location: "臺北市信義區莊敬路391巷22號",
		Advisory: "行車建議：盡可能減少外出",
		WindInfo: models.WindInfo{
			Speed:       "10.5",
			Unit:        "m/s",
			Direction:   "東北風",
			Intensity:   70,
			Temperature: "25",
			Humidity:    "65",
			Pressure:    "1013",
		},
		DrivingAdvice: "持續有強陣風與短暫大雨，建議非必要不要駕車上路。",
		Services: []ServiceItem{
			{ID: "traffic", Name: "路況檢視", Icon: "🚗", Route: "traffic"},
			{ID: "safe-nav", Name: "安全導航", Icon: "🧭", Route: "safeNavigation"},
			{ID: "report", Name: "障礙回報", Icon: "⚠️", Route: "wind"},
			{ID: "wind", Name: "風況詳情", Icon: "🌪️", Disabled: true},
			{ID: "settings", Name: "個人設定", Icon: "⚙️", Disabled: true},
		},
		MapPreview: MapPreview{
			Title:       "路況查看",
			AddressHint: "顯示詳細地址 >",
			Road:        "信義路五段",
			Landmark:    "台北101",
			UpdatedAt:   "更新於 2 分鐘前",
		},
		GoogleMapEmbed: embedURL,
		StreetInfo: StreetInfo{
			Intersection: "莊敬路391巷 x 信義路五段",
			Status:       "街口資料讀取中，等待 API 注入",
			Source:       "資料來源：智慧交通 API（預留）",
		},
		NewsList: []models.NewsItem{
			{
				ID:          1,
				Title:       "北部持續豪大雨 勿強行涉水",
				Description: "台北一名大學生於返家路上遭遇颱風外圍環流，雨勢造成能見度低，駕駛須減速慢行。",
				Time:        "剛剛更新",
			},
			{
				ID:          2,
				Title:       "東部山區出現落石 須注意",
				Description: "花蓮天祥路段傳出落石，公路總局籲民眾暫勿前往並密切關注最新路況資訊。",
				Time:        "3 分鐘前",
			},
		},
	}
}

// TrafficTab identifies one traffic layer toggle.
type TrafficTab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TrafficLayerPreset styles one traffic layer.
type TrafficLayerPreset struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Highlight   string `json:"highlight"`
	Color       string `json:"color"`
}

// GetTrafficTabs returns the traffic layer toggles in display order.
func GetTrafficTabs() []TrafficTab {
	return []TrafficTab{
		{ID: "avoid", Label: "迴避路段"},
		{ID: "danger", Label: "危險路段"},
		{ID: "safe", Label: "安全路段"},
	}
}

// GetTrafficLayerPresets returns the per-layer presentation presets.
func GetTrafficLayerPresets() map[string]TrafficLayerPreset {
	return map[string]TrafficLayerPreset{
		"avoid": {
			Title:       "請迴避：忠孝復興圓環",
			Description: "目前車流壅塞，陣風達 10 m/s，建議改道至敦化南路。",
			Highlight:   "灰色虛線顯示可能封閉路段",
			Color:       "#6B7280",
		},
		"danger": {
			Title:       "危險路段：仁愛路三段",
			Description: "路樹傾倒仍在處理，局部區域有積水，進入前請放慢速度。",
			Highlight:   "紅色警示標記顯示事故熱點",
			Color:       "#D45251",
		},
		"safe": {
			Title:       "安全路段：市民大道高架",
			Description: "路況順暢且視線良好，系統建議優先通過該路段。",
			Highlight:   "綠色線段顯示建議路徑",
			Color:       "#62A3A6",
		},
	}
}

// SafeNavigationData is the safe-navigation page model.
type SafeNavigationData struct {
	DefaultStart string                    `json:"defaultStart"`
	DefaultEnd   string                    `json:"defaultEnd"`
	Segments     []models.SafeRouteSegment `json:"segments"`
	MapEmbedURL  string                    `json:"mapEmbedUrl"`
}

// GetSafeNavigationData returns the seeded route segment list. Seeds carry
// representative coordinates so they satisfy the same invariants as
// normalized backend segments.
func GetSafeNavigationData(embedURL string) SafeNavigationData {
	if embedURL == "" {
		embedURL = SafeNavMapEmbed
	}
	return SafeNavigationData{
		DefaultStart: "臺北市政府",
		DefaultEnd:   "國立故宮博物院",
		Segments: []models.SafeRouteSegment{
			{
				ID: "sec-1", Name: "信義路五段 → 敦化大道",
				StartLat: 25.0330, StartLng: 121.5654, EndLat: 25.0392, EndLng: 121.5491,
				WindSpeed: 8.5, Direction: "東北風", RiskLevel: 3,
				Note: "建議保持 40km/h 以下，注意側風",
			},
			{
				ID: "sec-2", Name: "民權東路 → 建國北路",
				StartLat: 25.0628, StartLng: 121.5332, EndLat: 25.0634, EndLng: 121.5369,
				WindSpeed: 6.2, Direction: "東風", RiskLevel: 2,
				Note: "風速穩定，可保持行車間距",
			},
			{
				ID: "sec-3", Name: "承德路三段 → 至善路",
				StartLat: 25.0821, StartLng: 121.5198, EndLat: 25.1023, EndLng: 121.5493,
				WindSpeed: 10.1, Direction: "東北風", RiskLevel: 3,
				Note: "靠山邊風切較強，請降低車速",
			},
			{
				ID: "sec-4", Name: "外雙溪橋段",
				StartLat: 25.0955, StartLng: 121.5342, EndLat: 25.0988, EndLng: 121.5410,
				WindSpeed: 5.1, Direction: "東風", RiskLevel: 2,
				Note: "路面濕滑，建議開啟霧燈",
			},
		},
		MapEmbedURL: embedURL,
	}
}

// ObstacleTypeOption is one selectable obstacle category.
type ObstacleTypeOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ObstacleReportData is the obstacle-report page model.
type ObstacleReportData struct {
	MapEmbedURL   string               `json:"mapEmbedUrl"`
	ObstacleTypes []ObstacleTypeOption `json:"obstacleTypes"`
	HelperText    string               `json:"helperText"`
}

// GetObstacleReportData returns the obstacle-report page seeds.
func GetObstacleReportData(embedURL string) ObstacleReportData {
	if embedURL == "" {
		embedURL = ObstacleMapEmbed
	}
	return ObstacleReportData{
		MapEmbedURL: embedURL,
		HelperText:  "街口資料即將串接交通局 API，將顯示障礙狀態、回報人與時間。",
		ObstacleTypes: []ObstacleTypeOption{
			{ID: "tree", Label: "路樹傾倒", Icon: "🌳", Color: "#4AA37D"},
			{ID: "sign", Label: "招牌掉落", Icon: "🪧", Color: "#F3A530"},
			{ID: "accident", Label: "交通事故", Icon: "🚨", Color: "#D45251"},
			{ID: "others", Label: "其他情況", Icon: "⚠️", Color: "#5B8DEF"},
		},
	}
}

// GetWindDetail returns the default wind-detail view model used until a
// station reading replaces it.
func GetWindDetail() models.WindDetail {
	return models.WindDetail{
		Location:  "台北市大安區",
		WindSpeed: 10.5,
		Unit:      "m/s",
		UpdatedAt: time.Now().Format(time.RFC3339),
		Source:    "資料來源：中央氣象局",
		MaxWind:   11.8,
		AvgWind:   10.3,
		Direction: "北北東",
		RiskLevel: 3,
		RiskLabel: "中度風險",
		Trend: []models.TrendPoint{
			{Hour: 0, Value: 8.4},
			{Hour: 3, Value: 8.9},
			{Hour: 6, Value: 9.8},
			{Hour: 9, Value: 10.6},
			{Hour: 12, Value: 11.2},
			{Hour: 15, Value: 11.8},
			{Hour: 18, Value: 10.9},
			{Hour: 21, Value: 10.2},
			{Hour: 24, Value: 9.5},
		},
	}
}
