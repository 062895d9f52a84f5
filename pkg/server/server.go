// Package server exposes the monitor's latest measurement and its
// Prometheus metrics over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimit = 50
	defaultBurst     = 100
	shutdownTimeout  = 5 * time.Second
)

// Server is the status HTTP server.
type Server struct {
	listenAddr string
	status     *Status
	gatherer   prometheus.Gatherer
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewServer creates a Server that reports status and serves metrics
// gathered from gatherer.
func NewServer(listenAddr string, status *Status, gatherer prometheus.Gatherer, logger *logrus.Logger) *Server {
	return &Server{
		listenAddr: listenAddr,
		status:     status,
		gatherer:   gatherer,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		logger:     logger,
	}
}

// Handler builds the full route and middleware stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api", s.handleAPI)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	rl := newRateLimitMiddleware(s.limiter)
	return requireGET(rl(noCacheMiddleware(securityHeadersMiddleware(mux))))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting status server on %v...", s.listenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Status server stopped.")
	return nil
}
