package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/ynn22/citywind/internal/api"
	"github.com/ynn22/citywind/internal/bridge"
	"github.com/ynn22/citywind/internal/geocode"
	"github.com/ynn22/citywind/internal/ingest"
	"github.com/ynn22/citywind/internal/maps"
)

type cli struct {
	Port       string `env:"PORT" default:"8080" help:"HTTP listen port."`
	BackendURL string `env:"BACKEND_URL" help:"Advisory backend base URL. Empty selects the hosted backend."`

	MapsAPIKey string `env:"GOOGLE_MAPS_API_KEY" help:"Google Maps API key. Empty degrades geocoding and map embeds."`
	MapID      string `env:"GOOGLE_MAP_ID" help:"Vector map id for keyed embeds."`

	District      string `env:"DEFAULT_DISTRICT" default:"臺北市" help:"Default forecast district."`
	ForecastHours int    `env:"FORECAST_HOURS" default:"48" help:"Forecast window length in hours."`
	RiskLevel     int    `env:"DEFAULT_RISK_LEVEL" default:"5" help:"Road risk level queried by default."`
	Timezone      string `env:"TIMEZONE" default:"Asia/Taipei" help:"Timezone for forecast windows."`

	HomeEmbedURL     string `env:"HOME_EMBED_URL" help:"Override for the home page map embed."`
	TrafficEmbedURL  string `env:"TRAFFIC_EMBED_URL" help:"Override for the traffic page map embed."`
	SafeNavEmbedURL  string `env:"SAFENAV_EMBED_URL" help:"Override for the safe-navigation map embed."`
	ObstacleEmbedURL string `env:"OBSTACLE_EMBED_URL" help:"Override for the obstacle-report map embed."`

	LogLevel string `env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log verbosity."`
}

func main() {
	var flags cli
	kong.Parse(&flags,
		kong.Name("citywind"),
		kong.Description("Wind and road-condition advisory service for the city dashboard."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(flags.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loc, err := time.LoadLocation(flags.Timezone)
	if err != nil {
		logger.Warn("timezone unavailable, using UTC", "timezone", flags.Timezone, "error", err)
		loc = time.UTC
	}

	identity := bridge.NewIdentity(nil, logger)
	client := ingest.NewClient(flags.BackendURL, logger,
		ingest.WithIdentity(identity),
		ingest.WithLocation(loc),
	)
	geocoder := geocode.NewClient(flags.MapsAPIKey, "zh-TW", logger)
	loader := maps.NewLoader(flags.MapsAPIKey, flags.MapID)

	server := api.NewServer(client, geocoder, loader, api.Config{
		Port:             flags.Port,
		DefaultRiskLevel: flags.RiskLevel,
		ForecastHours:    flags.ForecastHours,
		DefaultDistrict:  flags.District,
		MapsAPIKey:       flags.MapsAPIKey,
		HomeEmbedURL:     flags.HomeEmbedURL,
		TrafficEmbedURL:  flags.TrafficEmbedURL,
		SafeNavEmbedURL:  flags.SafeNavEmbedURL,
		ObstacleEmbedURL: flags.ObstacleEmbedURL,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting", "port", flags.Port)
	if err := server.Run(ctx); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
