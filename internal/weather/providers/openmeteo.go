package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/zipcode-weather/internal/weather"
	"github.com/sony/gobreaker"
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: openMeteoURL,
		client:  client,
		circuit: newBreaker("openmeteo"),
	}
}

// WithBaseURL points the provider at a different endpoint.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// forecastQuery builds the Open-Meteo query: Fahrenheit, five forecast days plus
// one past day, timezone detected from the coordinates, unix timestamps.
func forecastQuery(lat, lon float64) url.Values {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("current", "temperature_2m,weather_code")
	values.Set("hourly", "temperature_2m,weather_code,is_day")
	values.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	values.Set("temperature_unit", "fahrenheit")
	values.Set("forecast_days", "5")
	values.Set("past_days", "1")
	values.Set("timezone", "auto")
	values.Set("timeformat", "unixtime")
	return values
}

type openMeteoPayload struct {
	UTCOffsetSeconds int64 `json:"utc_offset_seconds"`
	Current          struct {
		Time          int64   `json:"time"`
		Temperature2m float64 `json:"temperature_2m"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
	Hourly struct {
		Time          []int64   `json:"time"`
		Temperature2m []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weather_code"`
		IsDay         []int     `json:"is_day"`
	} `json:"hourly"`
	Daily struct {
		Time             []int64   `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, lat, lon float64) (weather.RawForecast, error) {
	u := fmt.Sprintf("%s?%s", p.baseURL, forecastQuery(lat, lon).Encode())

	var payload openMeteoPayload
	if err := getJSON(ctx, p.client, p.circuit, u, &payload); err != nil {
		return weather.RawForecast{}, fmt.Errorf("openmeteo: %w", err)
	}

	return weather.RawForecast{
		UTCOffsetSeconds: payload.UTCOffsetSeconds,
		Current: weather.RawCurrent{
			Time:        payload.Current.Time,
			Temperature: payload.Current.Temperature2m,
			WeatherCode: payload.Current.WeatherCode,
		},
		Hourly: weather.RawHourly{
			Time:        payload.Hourly.Time,
			Temperature: payload.Hourly.Temperature2m,
			WeatherCode: payload.Hourly.WeatherCode,
			IsDay:       payload.Hourly.IsDay,
		},
		Daily: weather.RawDaily{
			Time:        payload.Daily.Time,
			TempMax:     payload.Daily.Temperature2mMax,
			TempMin:     payload.Daily.Temperature2mMin,
			WeatherCode: payload.Daily.WeatherCode,
		},
	}, nil
}
