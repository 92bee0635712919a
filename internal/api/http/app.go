package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/zipcode-weather/internal/store"
	"github.com/i474232898/zipcode-weather/internal/weather"
)

// NewApp builds the Fiber app with middleware, API routes and, when staticDir
// is not empty, static assets served at "/".
func NewApp(service *weather.Service, probes *store.MemoryStore, staticDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "zipcode-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}?${queryParams}\n",
	}))
	app.Use(recover.New())

	RegisterRoutes(app, service, probes)

	if staticDir != "" {
		app.Static("/", staticDir)
	}

	return app
}

// errorHandler renders every error as {"error": true, "message": ...}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
