package weather

import (
	"context"
)

// Geocoder resolves a postal code to its first matching location.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, postalCode string) (Location, error)
}

// ForecastProvider fetches the raw forecast for a coordinate pair.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64) (RawForecast, error)
}
