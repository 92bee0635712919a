package weather

import (
	"fmt"
	"strings"
	"time"
)

const (
	// HourlyWindow bounds the hourly outlook.
	HourlyWindow = 24
	// DailyWindow bounds the daily outlook, not counting today.
	DailyWindow = 5

	currentTimeLayout = "3:04 PM"
	hourLayout        = "3 PM"
	dateLayout        = "1/2"
)

// hourlySample is one hour of the forecast with its timestamp already shifted to local time.
type hourlySample struct {
	local       time.Time
	temperature float64
	weatherCode int
	isDay       int
}

type dailySample struct {
	local       time.Time
	tempMax     float64
	tempMin     float64
	weatherCode int
}

// localTime shifts a UTC epoch by offset seconds. The result is labelled UTC but
// carries the location's wall clock.
func localTime(epoch, offset int64) time.Time {
	return time.Unix(epoch+offset, 0).UTC()
}

// currentHourStart truncates epoch to the start of its UTC hour and then shifts by offset.
func currentHourStart(epoch, offset int64) time.Time {
	u := time.Unix(epoch, 0).UTC()
	hour := time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), 0, 0, 0, time.UTC)
	return hour.Add(time.Duration(offset) * time.Second)
}

func sameHour(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day() && a.Hour() == b.Hour()
}

func zipHourly(h RawHourly, offset int64) ([]hourlySample, error) {
	n := len(h.Time)
	if len(h.Temperature) != n || len(h.WeatherCode) != n || len(h.IsDay) != n {
		return nil, fmt.Errorf("%w: hourly time=%d temperature=%d weather_code=%d is_day=%d",
			ErrMalformedSeries, n, len(h.Temperature), len(h.WeatherCode), len(h.IsDay))
	}

	samples := make([]hourlySample, n)
	for i := range h.Time {
		samples[i] = hourlySample{
			local:       localTime(h.Time[i], offset),
			temperature: h.Temperature[i],
			weatherCode: h.WeatherCode[i],
			isDay:       h.IsDay[i],
		}
	}
	return samples, nil
}

func zipDaily(d RawDaily, offset int64) ([]dailySample, error) {
	n := len(d.Time)
	if len(d.TempMax) != n || len(d.TempMin) != n || len(d.WeatherCode) != n {
		return nil, fmt.Errorf("%w: daily time=%d temp_max=%d temp_min=%d weather_code=%d",
			ErrMalformedSeries, n, len(d.TempMax), len(d.TempMin), len(d.WeatherCode))
	}

	samples := make([]dailySample, n)
	for i := range d.Time {
		samples[i] = dailySample{
			local:       localTime(d.Time[i], offset),
			tempMax:     d.TempMax[i],
			tempMin:     d.TempMin[i],
			weatherCode: d.WeatherCode[i],
		}
	}
	return samples, nil
}

// ShortName returns the first comma-separated segment of a geocoded display name.
func ShortName(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return name
}

// Transform reshapes a raw provider forecast into the display view. It either
// returns a complete DisplayForecast or an error; no partial result is produced.
func Transform(raw RawForecast, displayName string, icons IconTable) (DisplayForecast, error) {
	offset := raw.UTCOffsetSeconds

	hourly, err := zipHourly(raw.Hourly, offset)
	if err != nil {
		return DisplayForecast{}, err
	}
	daily, err := zipDaily(raw.Daily, offset)
	if err != nil {
		return DisplayForecast{}, err
	}

	now := localTime(raw.Current.Time, offset)
	thisHour := currentHourStart(raw.Current.Time, offset)

	current, err := currentConditions(now, hourly, daily)
	if err != nil {
		return DisplayForecast{}, err
	}

	hourlyOutlook, err := hourlyOutlook(thisHour, hourly, icons)
	if err != nil {
		return DisplayForecast{}, err
	}

	dailyOutlook, err := dailyOutlook(daily, icons)
	if err != nil {
		return DisplayForecast{}, err
	}

	return DisplayForecast{
		LocationName: ShortName(displayName),
		Current:      current,
		Hourly:       hourlyOutlook,
		Daily:        dailyOutlook,
	}, nil
}

func currentConditions(now time.Time, hourly []hourlySample, daily []dailySample) (CurrentForecast, error) {
	idx := -1
	for i, h := range hourly {
		if sameHour(h.local, now) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return CurrentForecast{}, fmt.Errorf("%w: %s", ErrMissingCurrentHour, now.Format("2006-01-02 15:00"))
	}
	if len(daily) == 0 {
		return CurrentForecast{}, ErrEmptyDailySeries
	}

	// Index 0 of the daily series is today.
	today := daily[0]

	return CurrentForecast{
		Time:    now.Format(currentTimeLayout),
		Temp:    int(hourly[idx].temperature),
		TempMax: int(today.tempMax),
		TempMin: int(today.tempMin),
	}, nil
}

func hourlyOutlook(thisHour time.Time, hourly []hourlySample, icons IconTable) ([]HourlyForecast, error) {
	out := make([]HourlyForecast, 0, HourlyWindow)
	for _, h := range hourly {
		if len(out) == HourlyWindow {
			break
		}
		if h.local.Before(thisHour) {
			continue
		}

		icon, err := icons.Select(h.weatherCode, h.isDay)
		if err != nil {
			return nil, err
		}

		out = append(out, HourlyForecast{
			Hour:        h.local.Format(hourLayout),
			Temperature: int(h.temperature),
			Icon:        icon,
		})
	}
	return out, nil
}

func dailyOutlook(daily []dailySample, icons IconTable) ([]DailyForecast, error) {
	if len(daily) <= 1 {
		return []DailyForecast{}, nil
	}

	upcoming := daily[1:]
	if len(upcoming) > DailyWindow {
		upcoming = upcoming[:DailyWindow]
	}

	out := make([]DailyForecast, 0, len(upcoming))
	for _, d := range upcoming {
		icon, err := icons.Day(d.weatherCode)
		if err != nil {
			return nil, err
		}

		out = append(out, DailyForecast{
			Date:    d.local.Format(dateLayout),
			TempMin: int(d.tempMin),
			TempMax: int(d.tempMax),
			Icon:    icon,
		})
	}
	return out, nil
}
