package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/skycast-app/skycast/internal/api/http"
	"github.com/skycast-app/skycast/internal/config"
	"github.com/skycast-app/skycast/internal/store"
	"github.com/skycast-app/skycast/internal/theme"
	"github.com/skycast-app/skycast/internal/weather"
	"github.com/skycast-app/skycast/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var provider weather.Provider = providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
	if cfg.ProviderRateLimit > 0 {
		provider = providers.NewRateLimitedProvider(provider, cfg.ProviderRateLimit, cfg.ProviderBurst)
	}

	// Core service reshaping provider responses for the dashboard.
	// Day boundaries and clock labels follow the server's local frame.
	service := weather.NewService(provider, time.Local)

	// Display preferences, persisted across sessions.
	prefs := store.NewFileStore(cfg.PreferencesFile)
	themes := theme.NewManager(prefs, cfg.PreferDarkMode)
	themes.Initialize()

	app := fiber.New(fiber.Config{
		AppName:               "skycast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "skycast",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, themes)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
