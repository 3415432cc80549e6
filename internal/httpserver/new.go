package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin            *gin.Engine
	l              log.Logger
	port           int
	mode           string
	environment    string
	allowedOrigins []string

	// Observability
	gatherer     prometheus.Gatherer
	readiness    func(context.Context) error
	toolsEnabled func() bool

	// Chat domain
	chatUC chat.UseCase
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger         log.Logger
	Port           int
	Mode           string
	Environment    string
	AllowedOrigins []string

	// Gatherer backs GET /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Readiness backs GET /ready; nil always reports ready.
	Readiness func(context.Context) error
	// ToolsEnabled is reported by GET /health when set.
	ToolsEnabled func() bool

	// Chat domain
	ChatUseCase chat.UseCase
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		allowedOrigins: cfg.AllowedOrigins,
		gatherer:       cfg.Gatherer,
		readiness:      cfg.Readiness,
		toolsEnabled:   cfg.ToolsEnabled,
		chatUC:         cfg.ChatUseCase,
	}
	if srv.gatherer == nil {
		srv.gatherer = prometheus.DefaultGatherer
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat use case is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
