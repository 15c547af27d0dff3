package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ynn22/citywind/internal/content"
	"github.com/ynn22/citywind/internal/geo"
	"github.com/ynn22/citywind/internal/maps"
	"github.com/ynn22/citywind/internal/models"
	"github.com/ynn22/citywind/internal/normalize"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func parseCoord(r *http.Request, name string) (float64, bool) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	return v, err == nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	overview := content.GetHomeOverview(s.cfg.HomeEmbedURL)

	// Live data replaces the seeds when the backend cooperates; the page
	// renders either way.
	if news := s.client.FetchPoliceNews(r.Context()); len(news) > 0 {
		overview.NewsList = news
	}
	if lat, latOK := parseCoord(r, "lat"); latOK {
		if lng, lngOK := parseCoord(r, "lng"); lngOK {
			stations := s.client.FetchWindStations(r.Context())
			if match := geo.NearestStation(lat, lng, stations); match != nil {
				overview.WindInfo = normalize.BuildWindReading(match.Station).Info
			}
		}
	}

	writeJSON(w, overview)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.client.FetchPoliceNews(r.Context()))
}

func (s *Server) handleTraffic(w http.ResponseWriter, r *http.Request) {
	embed := s.cfg.TrafficEmbedURL
	if embed == "" {
		embed = content.TrafficMapEmbed
	}
	writeJSON(w, map[string]any{
		"tabs":        content.GetTrafficTabs(),
		"presets":     content.GetTrafficLayerPresets(),
		"mapEmbedUrl": embed,
	})
}

func (s *Server) handleSafeNavigation(w http.ResponseWriter, r *http.Request) {
	data := content.GetSafeNavigationData(s.cfg.SafeNavEmbedURL)

	if segments := s.client.FetchRoadRisk(r.Context(), s.cfg.DefaultRiskLevel); len(segments) > 0 {
		data.Segments = segments
	}

	writeJSON(w, data)
}

func (s *Server) handleObstacleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, content.GetObstacleReportData(s.cfg.ObstacleEmbedURL))
}

func (s *Server) handleWindStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.client.FetchWindStations(r.Context()))
}

type nearestResponse struct {
	Station        models.WindStation `json:"station"`
	DistanceMeters float64            `json:"distanceMeters"`
	WindInfo       models.WindInfo    `json:"windInfo"`
}

func (s *Server) handleWindNearest(w http.ResponseWriter, r *http.Request) {
	lat, latOK := parseCoord(r, "lat")
	lng, lngOK := parseCoord(r, "lng")
	if !latOK || !lngOK {
		http.Error(w, "lat and lng query parameters required", http.StatusBadRequest)
		return
	}

	stations := s.client.FetchWindStations(r.Context())
	match := geo.NearestStation(lat, lng, stations)
	if match == nil {
		writeJSON(w, nil)
		return
	}

	writeJSON(w, nearestResponse{
		Station:        match.Station,
		DistanceMeters: match.DistanceMeters,
		WindInfo:       normalize.BuildWindReading(match.Station).Info,
	})
}

func (s *Server) handleWindDetail(w http.ResponseWriter, r *http.Request) {
	detail := content.GetWindDetail()

	lat, latOK := parseCoord(r, "lat")
	lng, lngOK := parseCoord(r, "lng")
	if latOK && lngOK {
		stations := s.client.FetchWindStations(r.Context())
		if match := geo.NearestStation(lat, lng, stations); match != nil {
			live := normalize.BuildWindReading(match.Station).Detail
			// Overlay the station reading on the seed; max wind and the
			// trend series have no live source yet.
			detail.Location = live.Location
			detail.Source = live.Source
			detail.WindSpeed = live.WindSpeed
			detail.AvgWind = live.AvgWind
			detail.Direction = live.Direction
			detail.RiskLevel = live.RiskLevel
			detail.RiskLabel = live.RiskLabel
			detail.UpdatedAt = live.UpdatedAt
		}
	}

	writeJSON(w, detail)
}

func (s *Server) handleWindFuture(w http.ResponseWriter, r *http.Request) {
	district := r.URL.Query().Get("district")
	if district == "" {
		district = s.cfg.DefaultDistrict
	}
	hours := s.cfg.ForecastHours
	if v, err := strconv.Atoi(r.URL.Query().Get("hours")); err == nil && v > 0 {
		hours = v
	}

	writeJSON(w, s.client.FetchFutureWind(r.Context(), district, hours))
}

func (s *Server) handleRoadRisk(w http.ResponseWriter, r *http.Request) {
	level := s.cfg.DefaultRiskLevel
	if v, err := strconv.Atoi(r.URL.Query().Get("level")); err == nil && v >= 1 && v <= 5 {
		level = v
	}
	writeJSON(w, s.client.FetchRoadRisk(r.Context(), level))
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	status := models.ParseIssueStatus(r.URL.Query().Get("status"))
	writeJSON(w, s.client.IssuesByStatus(r.Context(), status))
}

func (s *Server) handleIssueCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	address := q.Get("address")
	obstacleType := q.Get("obstacle_type")
	if address == "" || obstacleType == "" {
		http.Error(w, "address and obstacle_type required", http.StatusBadRequest)
		return
	}

	result := s.client.CreateIssue(r.Context(), address, obstacleType, q.Get("description"))
	writeJSON(w, result)
}

func (s *Server) handleIssueUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	issueID := q.Get("issue_id")
	if issueID == "" {
		http.Error(w, "issue_id required", http.StatusBadRequest)
		return
	}

	status := models.ParseIssueStatus(q.Get("status"))
	writeJSON(w, s.client.UpdateIssue(r.Context(), issueID, status))
}

func (s *Server) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, latOK := parseCoord(r, "lat")
	lng, lngOK := parseCoord(r, "lng")
	if !latOK || !lngOK {
		http.Error(w, "lat and lng query parameters required", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]string{"address": s.geocoder.Reverse(r.Context(), lat, lng)})
}

func (s *Server) handleForwardGeocode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	loc := s.geocoder.Forward(r.Context(), query)
	if loc == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, loc)
}

func (s *Server) handleMapsEmbed(w http.ResponseWriter, r *http.Request) {
	lat, latOK := parseCoord(r, "lat")
	lng, lngOK := parseCoord(r, "lng")
	if !latOK || !lngOK {
		http.Error(w, "lat and lng query parameters required", http.StatusBadRequest)
		return
	}

	apiKey := ""
	if capability, err := s.loader.Load(r.Context()); err == nil {
		apiKey = capability.APIKey
	} else {
		s.logger.Debug("maps capability unavailable, keyless embed", "error", err)
	}

	writeJSON(w, map[string]string{"url": maps.EmbedURLFromCoords(lat, lng, apiKey)})
}
