package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/zipcode-weather/internal/weather"
	"github.com/sony/gobreaker"
)

const mapsCoURL = "https://geocode.maps.co/search"

var errNoResults = errors.New("no results found for postal code")

// MapsCoGeocoder implements weather.Geocoder for geocode.maps.co.
type MapsCoGeocoder struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewMapsCoGeocoder(client *http.Client, apiKey string) *MapsCoGeocoder {
	return &MapsCoGeocoder{
		name:    "geocode.maps.co",
		apiKey:  apiKey,
		baseURL: mapsCoURL,
		client:  client,
		circuit: newBreaker("mapsco"),
	}
}

// WithBaseURL points the geocoder at a different endpoint.
func (g *MapsCoGeocoder) WithBaseURL(u string) *MapsCoGeocoder {
	g.baseURL = u
	return g
}

func (g *MapsCoGeocoder) Name() string {
	return g.name
}

func (g *MapsCoGeocoder) Geocode(ctx context.Context, postalCode string) (weather.Location, error) {
	if g.apiKey == "" {
		return weather.Location{}, fmt.Errorf("geocode.maps.co api key is not configured")
	}

	values := url.Values{}
	values.Set("q", postalCode)
	values.Set("api_key", g.apiKey)
	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())

	// lat/lon arrive as strings.
	var payload []struct {
		DisplayName string `json:"display_name"`
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
	}
	if err := getJSON(ctx, g.client, g.circuit, u, &payload); err != nil {
		return weather.Location{}, fmt.Errorf("geocode.maps.co: %w", err)
	}
	if len(payload) == 0 {
		return weather.Location{}, errNoResults
	}

	first := payload[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("invalid latitude %q: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return weather.Location{}, fmt.Errorf("invalid longitude %q: %w", first.Lon, err)
	}

	return weather.Location{
		DisplayName: first.DisplayName,
		Lat:         lat,
		Lon:         lon,
	}, nil
}
