package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"productos/internal/config"
	"productos/internal/docs"
	"productos/internal/handlers"
	"productos/internal/repositories"
	"productos/internal/services"
	"productos/internal/validation"
)

const apiPath = "/api"

// NewApp assembles the HTTP application. events may be nil.
func NewApp(cfg *config.Config, repo repositories.ProductRepository, events services.EventPublisher, log *slog.Logger) (*fiber.App, error) {
	validator, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}

	productService := services.NewProductService(repo, events, log)
	productHandler := handlers.NewProductHandler(productService, validator, log)

	app := fiber.New(fiber.Config{
		AppName:      docs.Title,
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	// --- API Routes ---
	api := app.Group(apiPath)
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hola mundo"})
	})
	productHandler.RegisterRoutes(api)

	// --- Docs ---
	if cfg.SwaggerEnabled {
		doc, err := docs.Build(context.Background(), productHandler.Endpoints(apiPath))
		if err != nil {
			return nil, err
		}
		if err := docs.Register(app, doc); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// errorHandler answers errors that escape a handler, including recovered panics.
func errorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		log.ErrorContext(c.UserContext(), "unhandled request error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": handlers.MsgInternalError})
	}
}
