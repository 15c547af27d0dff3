package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynn22/citywind/internal/content"
	"github.com/ynn22/citywind/internal/geocode"
	"github.com/ynn22/citywind/internal/ingest"
	"github.com/ynn22/citywind/internal/maps"
	"github.com/ynn22/citywind/internal/models"
)

const stationsPayload = `[
	{"station_name":"信義","station_id":"C0A980","county":"臺北市","town":"信義區",
	 "latitude":25.033,"longitude":121.565,"wind_speed":12.3,"wind_direction":"東北",
	 "air_temperature":24.5,"relative_humidity":68},
	{"station_name":"士林","station_id":"C0A981","county":"臺北市","town":"士林區",
	 "latitude":25.102,"longitude":121.549,"wind_speed":6.0,"wind_direction":"東",
	 "air_temperature":23.1,"relative_humidity":72}
]`

func newTestServer(t *testing.T, backend http.Handler, cfg Config) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	baseURL := "http://127.0.0.1:0"
	if backend != nil {
		bs := httptest.NewServer(backend)
		t.Cleanup(bs.Close)
		baseURL = bs.URL
	}

	client := ingest.NewClient(baseURL, logger)
	geocoder := geocode.NewClient(cfg.MapsAPIKey, "zh-TW", logger)
	loader := maps.NewLoader(cfg.MapsAPIKey, "")

	srv := httptest.NewServer(NewServer(client, geocoder, loader, cfg, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	var body map[string]string
	resp := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestWindNearest(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wind/" {
			w.Write([]byte(stationsPayload))
			return
		}
		http.NotFound(w, r)
	})
	srv := newTestServer(t, backend, Config{})

	t.Run("picks closest station", func(t *testing.T) {
		var body struct {
			Station        models.WindStation `json:"station"`
			DistanceMeters float64            `json:"distanceMeters"`
			WindInfo       models.WindInfo    `json:"windInfo"`
		}
		resp := getJSON(t, srv.URL+"/api/wind/nearest?lat=25.04&lng=121.56", &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		assert.Equal(t, "C0A980", body.Station.StationID)
		assert.Greater(t, body.DistanceMeters, 0.0)
		assert.Equal(t, "12.3", body.WindInfo.Speed)
		assert.Equal(t, "東北風", body.WindInfo.Direction)
		assert.Equal(t, 62, body.WindInfo.Intensity)
	})

	t.Run("malformed coordinates are rejected", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/api/wind/nearest?lat=abc&lng=121.5", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing coordinates are rejected", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/api/wind/nearest", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWindDetailOverlay(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wind/" {
			w.Write([]byte(stationsPayload))
			return
		}
		http.NotFound(w, r)
	})
	srv := newTestServer(t, backend, Config{})

	var detail models.WindDetail
	resp := getJSON(t, srv.URL+"/api/wind/detail?lat=25.033&lng=121.565", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, detail.Location, "信義")
	assert.Equal(t, 12.3, detail.WindSpeed)
	assert.Equal(t, "東北風", detail.Direction)
	// Fields without a live source keep their seed values.
	assert.Equal(t, 11.8, detail.MaxWind)
	assert.Len(t, detail.Trend, 9)
}

func TestWindDetailWithoutCoordsServesSeed(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	var detail models.WindDetail
	resp := getJSON(t, srv.URL+"/api/wind/detail", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, detail.RiskLevel)
	assert.Equal(t, "中度風險", detail.RiskLabel)
}

func TestSafeNavigation(t *testing.T) {
	t.Run("live segments replace seeds", func(t *testing.T) {
		backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/map/analyze_road_risk" {
				w.Write([]byte(`{"roads":[
					{"name":"測試路段","start_lat":25.01,"start_lng":121.5,
					 "end_lat":25.02,"end_lng":121.51,"wind_speed":9.0,
					 "wind_direction":"東北","risk_level":3,"note":"測試"}
				]}`))
				return
			}
			http.NotFound(w, r)
		})
		srv := newTestServer(t, backend, Config{})

		var data content.SafeNavigationData
		resp := getJSON(t, srv.URL+"/api/safe-navigation", &data)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, data.Segments, 1)
		assert.Equal(t, "測試路段", data.Segments[0].Name)
	})

	t.Run("backend down keeps fallback segments", func(t *testing.T) {
		srv := newTestServer(t, nil, Config{})

		var data content.SafeNavigationData
		resp := getJSON(t, srv.URL+"/api/safe-navigation", &data)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, data.Segments)
		assert.Equal(t, "臺北市政府", data.DefaultStart)
	})
}

func TestHomeDegradesToSeeds(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	var overview content.HomeOverview
	resp := getJSON(t, srv.URL+"/api/home", &overview)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, overview.Services)
	assert.NotEmpty(t, overview.NewsList)
	assert.Equal(t, content.HomeMapEmbed, overview.GoogleMapEmbed)
}

func TestHomeLiveEnrichment(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wind/":
			w.Write([]byte(stationsPayload))
		case "/news/police_local":
			w.Write([]byte(`[{"roadtype":"道路封閉","comment":"內湖路一段施工","happentime":"2026-08-31 10:00"}]`))
		default:
			http.NotFound(w, r)
		}
	})
	srv := newTestServer(t, backend, Config{})

	var overview content.HomeOverview
	resp := getJSON(t, srv.URL+"/api/home?lat=25.04&lng=121.56", &overview)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotEmpty(t, overview.NewsList)
	assert.Equal(t, "道路封閉", overview.NewsList[0].Title)
	assert.Equal(t, "12.3", overview.WindInfo.Speed)
}

func TestIssueEndpoints(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/issue/create", "/issue/update":
			w.Write([]byte(`{"message":"收到"}`))
		case "/issue/getByStatus":
			w.Write([]byte(`[{"issue_id":7,"address":"信義路","obstacle_type":"tree","status":"processing"}]`))
		default:
			http.NotFound(w, r)
		}
	})
	srv := newTestServer(t, backend, Config{})

	t.Run("create requires POST", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/api/issues/create?address=a&obstacle_type=tree", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("create validates params", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/issues/create?address=信義路", "", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create forwards to backend", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/issues/create?address=信義路&obstacle_type=tree", "", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result models.SubmitResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Equal(t, "收到", result.Message)
	})

	t.Run("update requires issue_id", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/issues/update?status=done", "", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list normalizes status", func(t *testing.T) {
		var issues []models.ObstacleIssueRecord
		resp := getJSON(t, srv.URL+"/api/issues?status=processing", &issues)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, issues, 1)
		assert.Equal(t, models.IssueInProgress, issues[0].Status)
	})
}

func TestReverseGeocodeKeyless(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	var body map[string]string
	resp := getJSON(t, srv.URL+"/api/geocode/reverse?lat=25.033&lng=121.5654", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "25.03300, 121.56540", body["address"])
}

func TestForwardGeocodeKeylessIsNull(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	resp, err := http.Get(srv.URL + "/api/geocode/forward?q=台北101")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loc *geocode.LatLng
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loc))
	assert.Nil(t, loc)
}

func TestMapsEmbed(t *testing.T) {
	t.Run("keyless uses public query URL", func(t *testing.T) {
		srv := newTestServer(t, nil, Config{})

		var body map[string]string
		resp := getJSON(t, srv.URL+"/api/maps/embed?lat=25.03&lng=121.56", &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body["url"], "maps.google.com/maps?q=25.03,121.56")
	})

	t.Run("keyed uses embed API", func(t *testing.T) {
		srv := newTestServer(t, nil, Config{MapsAPIKey: "test-key"})

		var body map[string]string
		resp := getJSON(t, srv.URL+"/api/maps/embed?lat=25.03&lng=121.56", &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body["url"], "embed/v1/view?key=test-key")
	})

	t.Run("bad coordinates rejected", func(t *testing.T) {
		srv := newTestServer(t, nil, Config{})
		resp := getJSON(t, srv.URL+"/api/maps/embed?lat=x&lng=y", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTrafficPage(t *testing.T) {
	srv := newTestServer(t, nil, Config{TrafficEmbedURL: "https://example.com/t"})

	var body struct {
		Tabs        []content.TrafficTab `json:"tabs"`
		MapEmbedURL string               `json:"mapEmbedUrl"`
	}
	resp := getJSON(t, srv.URL+"/api/traffic", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body.Tabs, 3)
	assert.Equal(t, "https://example.com/t", body.MapEmbedURL)
}

func TestFutureWindBackendDown(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	var forecast models.FutureWindForecast
	resp := getJSON(t, srv.URL+"/api/wind/future?district=台北市", &forecast)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "臺北市", forecast.District)
	assert.Empty(t, forecast.Entries)
}
