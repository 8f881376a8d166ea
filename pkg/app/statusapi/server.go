// Package statusapi implements app.Runner for the transaction status server process.
package statusapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/swap-status/pkg/app/http"
	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/txstatus"
)

// Server holds cfg to init the status server.
type Server struct {
	cfg *config.StatusServerConfig
}

// NewServer initializes a new status server.
func NewServer(cfg *config.StatusServerConfig) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("status server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting transaction status server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("log_api", cfg.LogQuery.BaseURL),
		zap.Bool("summarizer_enabled", cfg.Summarizer.IsEnabled()),
	)

	svc, cleanup, err := NewStatusService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return apphttp.ServeAndWait(ctx, NewRouter(cfg, svc, logger), logger, &cfg.Server)
}

// NewRouter builds the HTTP routes and middleware stack for svc.
func NewRouter(cfg *config.StatusServerConfig, svc txstatus.Service, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apphttp.CORS(&cfg.CORS))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.Server.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		}
		r.Use(apphttp.RateLimit(&cfg.RateLimit))
		txstatus.RegisterRoutes(r, svc, logger)
	})

	return r
}
