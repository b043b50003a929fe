package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"pillar2/config"
	"pillar2/internal/app"
	"pillar2/internal/handlers"
	"pillar2/internal/logger"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	log := logger.New("main").Function("runServer")

	cfg, err := config.InitConfig()
	if err != nil {
		return log.Err("failed to initialize config", err)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	application, err := app.NewWithConfig(cfg)
	if err != nil {
		return log.Err("failed to initialize app", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close app", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName:               "pillar2 " + application.Config.GeneralVersion,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	server.Use(recover.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     application.Config.CorsAllowOrigins,
		AllowCredentials: application.Config.CorsAllowOrigins != "*",
	}))

	if err := handlers.Router(server, application); err != nil {
		return log.Err("failed to register routes", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep(ctx, application)

	errCh := make(chan error, 1)
	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("Starting server", "address", address, "version", application.Config.GeneralVersion)
		errCh <- server.Listen(address)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return log.Err("server stopped", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
		return log.Err("failed to shut down server", err)
	}

	return nil
}

// sweep removes idle sessions on every tick until ctx is cancelled.
func sweep(ctx context.Context, application *app.App) {
	log := logger.New("main").Function("sweep")

	ticker := time.NewTicker(application.Config.SessionSweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := application.SessionController.SweepExpired(ctx); err != nil {
				log.Er("failed to sweep sessions", err)
			}
		}
	}
}
