package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const (
	GeocoderMapsCo = "mapsco"
	GeocoderGoogle = "google"
)

type AppConfig struct {
	Geocoder              string
	GeocodingAPIKey       string
	GoogleGeocodingAPIKey string

	BindAddr      string
	IconTablePath string
	StaticDir     string

	// HTTPTimeout bounds each outbound upstream call.
	HTTPTimeout time.Duration

	// Outbound geocoding rate limit.
	GeocodeRPS   float64
	GeocodeBurst int

	// Upstream probe. Empty ProbeZipcode disables it.
	ProbeZipcode    string
	ProbeInterval   time.Duration
	ProbeMaxHistory int           // max number of probe results kept (0 = unlimited)
	ProbeMaxAge     time.Duration // max age of probe results (0 = unlimited)

	LogLevel log.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Geocoder = strings.ToLower(getenvDefault("GEOCODER", GeocoderMapsCo))
	cfg.GeocodingAPIKey = os.Getenv("GEOCODING_API_KEY")
	cfg.GoogleGeocodingAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")

	switch cfg.Geocoder {
	case GeocoderMapsCo:
		if cfg.GeocodingAPIKey == "" {
			return nil, fmt.Errorf("GEOCODING_API_KEY is required for geocoder %q", cfg.Geocoder)
		}
	case GeocoderGoogle:
		if cfg.GoogleGeocodingAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_GEOCODING_API_KEY is required for geocoder %q", cfg.Geocoder)
		}
	default:
		return nil, fmt.Errorf("invalid GEOCODER %q: want %q or %q", cfg.Geocoder, GeocoderMapsCo, GeocoderGoogle)
	}

	cfg.BindAddr = getenvDefault("BIND_ADDR", "127.0.0.1:3000")
	cfg.IconTablePath = getenvDefault("ICON_TABLE_PATH", "data/weather-codes.json")
	cfg.StaticDir = getenvDefault("STATIC_DIR", "static")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(getenvDefault("GEOCODE_RPS", "1"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("invalid GEOCODE_RPS: must be a positive number")
	}
	cfg.GeocodeRPS = rps
	cfg.GeocodeBurst = getenvInt("GEOCODE_BURST", 1)

	cfg.ProbeZipcode = os.Getenv("PROBE_ZIPCODE")
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	cfg.ProbeMaxHistory = getenvInt("PROBE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals
	if cfg.ProbeMaxAge, err = getenvDuration("PROBE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	level, err := parseLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
