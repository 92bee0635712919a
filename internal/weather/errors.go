package weather

import "errors"

var (
	// ErrMissingCurrentHour is returned when no hourly entry falls in the current local hour.
	ErrMissingCurrentHour = errors.New("hourly series has no entry for the current hour")
	// ErrEmptyDailySeries is returned when the daily series has no entries.
	ErrEmptyDailySeries = errors.New("daily series is empty")
	// ErrUnknownConditionCode is returned when the icon table has no entry for a code.
	ErrUnknownConditionCode = errors.New("unknown weather condition code")
	// ErrMalformedSeries is returned when parallel series differ in length.
	ErrMalformedSeries = errors.New("parallel forecast series have mismatched lengths")

	ErrLocationNotFound    = errors.New("location not found")
	ErrForecastUnavailable = errors.New("forecast unavailable")
	ErrTransformFailed     = errors.New("forecast transform failed")
)
