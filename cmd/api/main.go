package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/app"
	"alfredoptarigan/bias-aware-recruitment/internal/config"
	"alfredoptarigan/bias-aware-recruitment/internal/handlers"
	"alfredoptarigan/bias-aware-recruitment/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if !cfg.EnvFileLoaded {
		log.Info("no .env file found, using environment variables")
	}

	components, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer components.Close()

	if err := components.Storage.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	// Initialize Handlers
	routes := handlers.Handlers{
		Health: handlers.NewHealthHandler(components.Persistence(), components.Structurer.Primary()),
		Upload: handlers.NewUploadHandler(
			components.Candidates,
			components.Storage,
			components.Validate,
			cfg.Storage.MaxFileSize,
			cfg.Storage.KeepUploads,
			log,
		),
		Fairness: handlers.NewFairnessHandler(components.Fairness, components.Validate, log),
	}
	if components.Persistence() {
		routes.Result = handlers.NewResultHandler(components.Assessments, components.Audits)
	}

	// Create Fiber app
	server := fiber.New(fiber.Config{
		AppName:      "Bias-Aware Recruitment API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    bodyLimit(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	server.Use(recover.New())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(server, routes)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := server.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := server.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// bodyLimit leaves room for multipart framing around the largest upload.
func bodyLimit(maxFileSize int64) int {
	const overhead = 1 << 20
	if maxFileSize <= 0 {
		return fiber.DefaultBodyLimit
	}
	return int(maxFileSize) + overhead
}
