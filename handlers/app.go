// handlers/app.go
package handlers

import (
	"game-catalog/middleware"
	"game-catalog/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type AppOptions struct {
	AllowedOrigins string
}

// NewApp builds the fiber app with the app-wide middleware and every route.
func NewApp(logger *logrus.Logger, store *services.GameStore, opts AppOptions) *fiber.App {
	if opts.AllowedOrigins == "" {
		opts.AllowedOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName: "game-catalog",
		// fasthttp refuses a declared Content-Length above this before
		// reading the body, so oversized requests never reach the routes.
		BodyLimit:             middleware.MaxJSONBody,
		ErrorHandler:          middleware.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	// inside the logger so a recovered panic is logged with its 500
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  opts.AllowedOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
		MaxAge:        86400,
	}))

	SetupGameRoutes(app, services.NewGameService(logger), store)
	return app
}
