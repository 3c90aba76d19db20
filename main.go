package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"productos/internal/config"
	"productos/internal/database"
	"productos/internal/logging"
	"productos/internal/repositories"
	"productos/internal/services"
	"productos/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logging.New(cfg)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// run returns only after every resource it opened is closed
	if err := run(cfg, log, quit); err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// run serves the API until quit receives a signal or the listener fails.
func run(cfg *config.Config, log *slog.Logger, quit <-chan os.Signal) error {
	// --- Initialize Repository ---
	var productRepo repositories.ProductRepository
	if cfg.DBDriver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
		log.Warn("using in-memory product repository, data is lost on exit")
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to %s database: %w", cfg.DBDriver, err)
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Error("error closing database", slog.Any("error", err))
			}
		}()
		log.Info("database connected", slog.String("driver", cfg.DBDriver))
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Initialize RabbitMQ Client ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
		}, log)
		if err != nil {
			log.Warn("product events disabled", slog.Any("error", err))
		} else {
			defer func() {
				if err := mqClient.Close(); err != nil {
					log.Error("error closing rabbitmq client", slog.Any("error", err))
				}
			}()
			events = mqClient
		}
	}

	app, err := NewApp(cfg, productRepo, events, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.String("addr", cfg.AppPort))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("error during fiber shutdown: %w", err)
	}

	log.Info("server gracefully stopped")
	return nil
}
