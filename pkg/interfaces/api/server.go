// Package api serves the analysis results over HTTP: a JSON API, the
// rendered dashboard, health and Prometheus endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/avelkar/supplysight/pkg/application/dto"
	"github.com/avelkar/supplysight/pkg/infrastructure/config"
	"github.com/avelkar/supplysight/pkg/infrastructure/metrics"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	config  config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	limiter *rate.Limiter
	result  *dto.AnalysisResult
}

// New constructs a server exposing the given analysis result
func New(cfg config.ServerConfig, result *dto.AnalysisResult, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config:  cfg,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		result:  result,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/forecasts", s.handleForecasts)
	mux.HandleFunc("GET /api/forecasts/{sku}", s.handleForecastBySKU)
	mux.HandleFunc("GET /api/policies", s.handlePolicies)
	mux.HandleFunc("GET /api/abc", s.handleABC)
	mux.HandleFunc("GET /api/risk/suppliers", s.handleSupplierRisks)
	mux.HandleFunc("GET /api/risk/stockouts", s.handleStockoutRisks)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /{$}", s.handleDashboard)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the full middleware-wrapped handler, for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails. Shutdown drains in-flight requests up to the configured
// timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := time.Duration(s.config.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down api server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("api server stopped")
	return nil
}
