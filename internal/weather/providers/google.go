package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/i474232898/zipcode-weather/internal/weather"
	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// geocoder keeps its API key in a package variable, so calls are serialized.
var googleMu sync.Mutex

// GoogleGeocoder implements weather.Geocoder on top of the Google Geocoding API.
type GoogleGeocoder struct {
	name    string
	apiKey  string
	circuit *gobreaker.CircuitBreaker

	// overridable in tests
	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:    "google",
		apiKey:  apiKey,
		circuit: newBreaker("google"),
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, postalCode string) (weather.Location, error) {
	if g.apiKey == "" {
		return weather.Location{}, fmt.Errorf("google geocoding api key is not configured")
	}
	if err := ctx.Err(); err != nil {
		return weather.Location{}, err
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		googleMu.Lock()
		defer googleMu.Unlock()
		geocoder.ApiKey = g.apiKey

		loc, err := g.geocode(geocoder.Address{PostalCode: postalCode})
		if err != nil {
			return nil, err
		}

		// The forward lookup has no display name; ask for it in reverse.
		name := postalCode
		addresses, err := g.reverse(loc)
		if err == nil && len(addresses) > 0 {
			name = addresses[0].FormatAddress()
		}

		return weather.Location{
			DisplayName: name,
			Lat:         loc.Latitude,
			Lon:         loc.Longitude,
		}, nil
	})
	if err != nil {
		return weather.Location{}, fmt.Errorf("google geocoding: %w", err)
	}

	return result.(weather.Location), nil
}
