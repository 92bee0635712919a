package weather

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
)

// Service resolves a postal code into a display forecast:
// geocode, then fetch the forecast, then transform. Each step depends on the previous one.
type Service struct {
	geocoder Geocoder
	forecast ForecastProvider
	icons    IconTable
}

// NewService creates a new Service.
func NewService(geocoder Geocoder, forecast ForecastProvider, icons IconTable) *Service {
	return &Service{
		geocoder: geocoder,
		forecast: forecast,
		icons:    icons,
	}
}

// Lookup returns the display forecast for postalCode. Errors wrap one of
// ErrLocationNotFound, ErrForecastUnavailable or ErrTransformFailed.
func (s *Service) Lookup(ctx context.Context, postalCode string) (DisplayForecast, error) {
	loc, err := s.geocoder.Geocode(ctx, postalCode)
	if err != nil {
		log.Debugf("geocoder %s failed for %q: %v", s.geocoder.Name(), postalCode, err)
		return DisplayForecast{}, fmt.Errorf("%w: %q: %w", ErrLocationNotFound, postalCode, err)
	}

	raw, err := s.forecast.FetchForecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		log.Errorf("provider %s forecast failed for %s: %v", s.forecast.Name(), loc.DisplayName, err)
		return DisplayForecast{}, fmt.Errorf("%w: %w", ErrForecastUnavailable, err)
	}

	display, err := Transform(raw, loc.DisplayName, s.icons)
	if err != nil {
		log.Errorf("transform failed for %s: %v", loc.DisplayName, err)
		return DisplayForecast{}, fmt.Errorf("%w: %w", ErrTransformFailed, err)
	}

	return display, nil
}
