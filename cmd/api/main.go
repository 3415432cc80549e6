package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"exam-prep-assistant/config"
	_ "exam-prep-assistant/docs" // Swagger docs
	"exam-prep-assistant/internal/app"
	"exam-prep-assistant/internal/httpserver"
	"exam-prep-assistant/pkg/log"
)

// @title       Exam Prep Assistant API
// @description Streaming study assistant: notes, quizzes and current affairs over SSE.
// @version     1
// @host        localhost:8000
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Exam Prep Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 4. Chat components
	deps, err := app.Build(ctx, cfg, logger, registry)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize components: %v", err)
		os.Exit(1)
	}
	defer deps.Close()

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Gatherer:       registry,
		Readiness:      deps.Ready,
		ToolsEnabled:   deps.Engine.ToolsEnabled,
		ChatUseCase:    deps.Chat,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		os.Exit(1)
	}

	// 6. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		deps.Close()
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}
