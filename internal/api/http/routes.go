package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/zipcode-weather/internal/store"
	"github.com/i474232898/zipcode-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, probes *store.MemoryStore) {
	app.Get("/health", healthHandler(probes))

	app.Get("/weather", weatherHandler(service))

	v1 := app.Group("/api/v1")
	v1.Get("/weather", weatherHandler(service))

	v1.Get("/probes", func(c *fiber.Ctx) error {
		var req probeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		results, err := probes.Range(req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no probe results for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read probe results")
		}

		return c.JSON(fiber.Map{
			"from":    req.From,
			"to":      req.To,
			"results": results,
		})
	})
}

func weatherHandler(service *weather.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		display, err := service.Lookup(c.UserContext(), q.Zipcode)
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrLocationNotFound):
				return fiber.NewError(fiber.StatusNotFound, "no location found for zipcode")
			case errors.Is(err, weather.ErrForecastUnavailable):
				return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "failed to build forecast")
			}
		}

		return c.JSON(display)
	}
}

func healthHandler(probes *store.MemoryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status":  "ok",
			"service": "zipcode-weather",
		}
		if last, err := probes.Latest(); err == nil {
			resp["last_probe"] = last
		}
		return c.JSON(resp)
	}
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	Zipcode string `validate:"required,max=16,printascii"`
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery

	q.Zipcode = c.Query("zipcode")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// probeQuery holds query parameters for the probe history endpoint.
type probeQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (p *probeQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	p.From = from
	p.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
