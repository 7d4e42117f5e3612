package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/metoffice-forecast/internal/api/http"
	"github.com/i474232898/metoffice-forecast/internal/config"
	"github.com/i474232898/metoffice-forecast/internal/datahub"
	"github.com/i474232898/metoffice-forecast/internal/locate"
	"github.com/i474232898/metoffice-forecast/internal/logging"
	"github.com/i474232898/metoffice-forecast/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if cfg.DataHubAPIKey == "" {
		zl.Warn("MET_OFFICE_DATAHUB_KEY is not set; forecast requests will fail")
	}

	client, err := datahub.New(datahub.Options{
		APIKey:         cfg.DataHubAPIKey,
		BaseURL:        cfg.DataHubBaseURL,
		Timeout:        cfg.HTTPTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         zl.Named("datahub"),
	})
	if err != nil {
		zl.Fatal("failed to create datahub client", zap.Error(err))
	}

	sched := scheduler.New(cfg.WatchLocations, cfg.WatchGranularity, cfg.FetchInterval, client, zl)
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "metoffice-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, client, locate.NewGeocoderResolver(cfg.GeocoderAPIKey), zl.Named("http"))

	go func() {
		zl.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Info("fiber server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
}
