// Package api serves the normalized view models to the dashboard UI as JSON.
// Handlers never surface backend failures as 5xx responses: the ingest layer
// already degrades to typed defaults, so the only error responses here are
// 400s for malformed caller input.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ynn22/citywind/internal/geocode"
	"github.com/ynn22/citywind/internal/ingest"
	"github.com/ynn22/citywind/internal/maps"
)

// Config carries the page-level settings handlers need.
type Config struct {
	Port             string
	DefaultRiskLevel int
	ForecastHours    int
	DefaultDistrict  string
	MapsAPIKey       string

	// Optional overrides for the bundled page embeds.
	HomeEmbedURL     string
	TrafficEmbedURL  string
	SafeNavEmbedURL  string
	ObstacleEmbedURL string
}

type Server struct {
	client   *ingest.Client
	geocoder *geocode.Client
	loader   *maps.Loader
	cfg      Config
	logger   *slog.Logger
}

func NewServer(client *ingest.Client, geocoder *geocode.Client, loader *maps.Loader, cfg Config, logger *slog.Logger) *Server {
	if cfg.DefaultRiskLevel == 0 {
		cfg.DefaultRiskLevel = 5
	}
	if cfg.ForecastHours == 0 {
		cfg.ForecastHours = 48
	}
	if cfg.DefaultDistrict == "" {
		cfg.DefaultDistrict = "臺北市"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		client:   client,
		geocoder: geocoder,
		loader:   loader,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/home", s.handleHome)
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/traffic", s.handleTraffic)
	mux.HandleFunc("/api/safe-navigation", s.handleSafeNavigation)
	mux.HandleFunc("/api/obstacle-report", s.handleObstacleReport)
	mux.HandleFunc("/api/wind/stations", s.handleWindStations)
	mux.HandleFunc("/api/wind/nearest", s.handleWindNearest)
	mux.HandleFunc("/api/wind/detail", s.handleWindDetail)
	mux.HandleFunc("/api/wind/future", s.handleWindFuture)
	mux.HandleFunc("/api/roadrisk", s.handleRoadRisk)
	mux.HandleFunc("/api/issues", s.handleIssues)
	mux.HandleFunc("/api/issues/create", s.handleIssueCreate)
	mux.HandleFunc("/api/issues/update", s.handleIssueUpdate)
	mux.HandleFunc("/api/geocode/reverse", s.handleReverseGeocode)
	mux.HandleFunc("/api/geocode/forward", s.handleForwardGeocode)
	mux.HandleFunc("/api/maps/embed", s.handleMapsEmbed)
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
