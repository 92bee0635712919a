package weather

// Location is a geocoded place resolved from a postal code.
type Location struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// RawForecast is the provider forecast as received, before any reshaping.
// Hourly and Daily are parallel sequences correlated only by index.
type RawForecast struct {
	UTCOffsetSeconds int64
	Current          RawCurrent
	Hourly           RawHourly
	Daily            RawDaily
}

// RawCurrent is the single "current" sample of a forecast.
type RawCurrent struct {
	Time        int64 // unix seconds, UTC
	Temperature float64
	WeatherCode int
}

type RawHourly struct {
	Time        []int64
	Temperature []float64
	WeatherCode []int
	IsDay       []int // 1 day, 0 night
}

// RawDaily holds one entry per day. Time is the location's midnight expressed as a UTC epoch.
type RawDaily struct {
	Time        []int64
	TempMax     []float64
	TempMin     []float64
	WeatherCode []int
}

// DisplayForecast is the display-ready view returned to callers.
type DisplayForecast struct {
	LocationName string           `json:"location_name"`
	Current      CurrentForecast  `json:"current"`
	Hourly       []HourlyForecast `json:"hourly"`
	Daily        []DailyForecast  `json:"daily"`
}

type CurrentForecast struct {
	Time    string `json:"time"`
	Temp    int    `json:"temp"`
	TempMax int    `json:"temp_max"`
	TempMin int    `json:"temp_min"`
}

type HourlyForecast struct {
	Hour        string `json:"hour"`
	Temperature int    `json:"temperature"`
	Icon        string `json:"icon"`
}

type DailyForecast struct {
	Date    string `json:"date"`
	TempMin int    `json:"temp_min"`
	TempMax int    `json:"temp_max"`
	Icon    string `json:"icon"`
}
