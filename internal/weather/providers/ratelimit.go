package providers

import (
	"context"
	"fmt"

	"github.com/i474232898/zipcode-weather/internal/weather"
	"golang.org/x/time/rate"
)

// RateLimitedGeocoder wraps a Geocoder with a token bucket.
type RateLimitedGeocoder struct {
	geocoder weather.Geocoder
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedGeocoder allows rps requests per second with the given burst.
func NewRateLimitedGeocoder(g weather.Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	return &RateLimitedGeocoder{
		geocoder: g,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", g.Name()),
	}
}

func (r *RateLimitedGeocoder) Geocode(ctx context.Context, postalCode string) (weather.Location, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.Location{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Geocode(ctx, postalCode)
}

func (r *RateLimitedGeocoder) Name() string {
	return r.name
}

var (
	_ weather.Geocoder         = (*RateLimitedGeocoder)(nil)
	_ weather.Geocoder         = (*MapsCoGeocoder)(nil)
	_ weather.Geocoder         = (*GoogleGeocoder)(nil)
	_ weather.ForecastProvider = (*OpenMeteoProvider)(nil)
)
