package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"

	httpapi "github.com/i474232898/zipcode-weather/internal/api/http"
	"github.com/i474232898/zipcode-weather/internal/config"
	"github.com/i474232898/zipcode-weather/internal/scheduler"
	"github.com/i474232898/zipcode-weather/internal/store"
	"github.com/i474232898/zipcode-weather/internal/weather"
	"github.com/i474232898/zipcode-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Icon table is read once and shared read-only.
	icons, err := weather.LoadIconTable(cfg.IconTablePath)
	if err != nil {
		log.Fatalf("failed to load icon table: %v", err)
	}
	log.Infof("loaded %d weather icons from %s", icons.Len(), cfg.IconTablePath)

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var geocoder weather.Geocoder
	switch cfg.Geocoder {
	case config.GeocoderGoogle:
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocodingAPIKey)
	default:
		geocoder = providers.NewMapsCoGeocoder(httpClient, cfg.GeocodingAPIKey)
	}
	geocoder = providers.NewRateLimitedGeocoder(geocoder, cfg.GeocodeRPS, cfg.GeocodeBurst)

	service := weather.NewService(geocoder, providers.NewOpenMeteoProvider(httpClient), icons)

	// Probe history with configured retention.
	probes := store.NewMemoryStore(cfg.ProbeMaxHistory, cfg.ProbeMaxAge)

	sched := scheduler.New(cfg.ProbeZipcode, cfg.ProbeInterval, service, probes)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, probes, cfg.StaticDir)

	go func() {
		log.Infof("listening on http://%s", cfg.BindAddr)
		if err := app.Listen(cfg.BindAddr); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
