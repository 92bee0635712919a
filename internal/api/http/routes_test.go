package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/zipcode-weather/internal/store"
	"github.com/i474232898/zipcode-weather/internal/weather"
)

type stubGeocoder struct {
	err error
}

func (s stubGeocoder) Name() string { return "stub" }

func (s stubGeocoder) Geocode(ctx context.Context, postalCode string) (weather.Location, error) {
	if s.err != nil {
		return weather.Location{}, s.err
	}
	return weather.Location{DisplayName: "Austin, Travis County, Texas", Lat: 30.27, Lon: -97.74}, nil
}

type stubForecast struct {
	raw weather.RawForecast
	err error
}

func (s stubForecast) Name() string { return "stub" }

func (s stubForecast) FetchForecast(ctx context.Context, lat, lon float64) (weather.RawForecast, error) {
	return s.raw, s.err
}

// liveForecast returns a UTC forecast whose hourly series covers the current hour.
func liveForecast() weather.RawForecast {
	start := time.Now().UTC().Truncate(time.Hour).Add(-time.Hour)
	var raw weather.RawForecast
	raw.Current = weather.RawCurrent{Time: time.Now().Unix(), Temperature: 71.6, WeatherCode: 0}
	for i := 0; i < 48; i++ {
		raw.Hourly.Time = append(raw.Hourly.Time, start.Add(time.Duration(i)*time.Hour).Unix())
		raw.Hourly.Temperature = append(raw.Hourly.Temperature, 70)
		raw.Hourly.WeatherCode = append(raw.Hourly.WeatherCode, 0)
		raw.Hourly.IsDay = append(raw.Hourly.IsDay, 1)
	}
	day := start.Truncate(24 * time.Hour)
	for i := 0; i < 6; i++ {
		raw.Daily.Time = append(raw.Daily.Time, day.Add(time.Duration(i)*24*time.Hour).Unix())
		raw.Daily.TempMax = append(raw.Daily.TempMax, 80)
		raw.Daily.TempMin = append(raw.Daily.TempMin, 60)
		raw.Daily.WeatherCode = append(raw.Daily.WeatherCode, 0)
	}
	return raw
}

func testService(geo weather.Geocoder, fc weather.ForecastProvider) *weather.Service {
	icons := weather.NewIconTable(map[string]string{"0": "sun.svg", "0night": "moon.svg"})
	return weather.NewService(geo, fc, icons)
}

func TestWeatherEndpoint(t *testing.T) {
	upstream := errors.New("boom")

	tests := []struct {
		name       string
		path       string
		geocoder   stubGeocoder
		forecast   stubForecast
		wantStatus int
	}{
		{
			name:       "missing zipcode",
			path:       "/weather",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown zipcode",
			path:       "/weather?zipcode=00000",
			geocoder:   stubGeocoder{err: upstream},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "forecast unavailable",
			path:       "/weather?zipcode=78701",
			forecast:   stubForecast{err: upstream},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "forecast cannot be transformed",
			path:       "/api/v1/weather?zipcode=78701",
			forecast:   stubForecast{raw: weather.RawForecast{}},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "ok",
			path:       "/weather?zipcode=78701",
			forecast:   stubForecast{raw: liveForecast()},
			wantStatus: http.StatusOK,
		},
		{
			name:       "ok on versioned path",
			path:       "/api/v1/weather?zipcode=78701",
			forecast:   stubForecast{raw: liveForecast()},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(testService(tt.geocoder, tt.forecast), store.NewMemoryStore(10, time.Hour), "")

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}

			if tt.wantStatus != http.StatusOK {
				var body struct {
					Error   bool   `json:"error"`
					Message string `json:"message"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("decode error body: %v", err)
				}
				if !body.Error || body.Message == "" {
					t.Errorf("unexpected error body: %+v", body)
				}
				return
			}

			var got weather.DisplayForecast
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode forecast: %v", err)
			}
			if got.LocationName != "Austin" {
				t.Errorf("expected location name Austin, got %q", got.LocationName)
			}
			if got.Current.Temp != 70 || got.Current.TempMax != 80 || got.Current.TempMin != 60 {
				t.Errorf("unexpected current conditions: %+v", got.Current)
			}
			if len(got.Hourly) != weather.HourlyWindow {
				t.Errorf("expected %d hourly entries, got %d", weather.HourlyWindow, len(got.Hourly))
			}
			if len(got.Daily) != weather.DailyWindow {
				t.Errorf("expected %d daily entries, got %d", weather.DailyWindow, len(got.Daily))
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	probes := store.NewMemoryStore(10, 0)
	app := NewApp(testService(stubGeocoder{}, stubForecast{}), probes, "")

	get := func() map[string]any {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body
	}

	body := get()
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if _, ok := body["last_probe"]; ok {
		t.Errorf("expected no last_probe before any probe ran")
	}

	probes.Save(store.ProbeResult{Timestamp: time.Now().UTC(), Zipcode: "78701", OK: true})
	if _, ok := get()["last_probe"]; !ok {
		t.Errorf("expected last_probe after a probe ran")
	}
}

func TestProbesEndpoint(t *testing.T) {
	probes := store.NewMemoryStore(0, 0)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		probes.Save(store.ProbeResult{Timestamp: base.Add(time.Duration(i) * time.Hour), Zipcode: "78701", OK: true})
	}
	app := NewApp(testService(stubGeocoder{}, stubForecast{}), probes, "")

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCount  int
	}{
		{"missing bounds", "", http.StatusBadRequest, 0},
		{"bad time", "?from=yesterday&to=today", http.StatusBadRequest, 0},
		{"reversed range", "?from=2024-03-01T14:00:00Z&to=2024-03-01T12:00:00Z", http.StatusBadRequest, 0},
		{"empty range", "?from=2024-02-01T00:00:00Z&to=2024-02-02T00:00:00Z", http.StatusNotFound, 0},
		{"rfc3339 range", "?from=2024-03-01T12:00:00Z&to=2024-03-01T13:00:00Z", http.StatusOK, 2},
		{"unix range", "?from=1709294400&to=1709308800", http.StatusOK, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/probes"+tt.query, nil))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Results []store.ProbeResult `json:"results"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Results) != tt.wantCount {
				t.Errorf("expected %d results, got %d", tt.wantCount, len(body.Results))
			}
		})
	}
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>weather</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	app := NewApp(testService(stubGeocoder{}, stubForecast{}), store.NewMemoryStore(1, 0), dir)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
}
