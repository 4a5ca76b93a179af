// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	POST /render/{format}  JSON input body; optional width, height and
//	                       gradient_base query parameters
//	POST /validate         JSON input body; returns annotated rows
//	GET  /healthz          build information
//
// Every response carries an X-Request-ID header, taken from the request when
// present and generated otherwise.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/funnel/pkg/pipeline"
)

// DefaultMaxBodyBytes limits request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner

	// Defaults apply to every render; query parameters override size and
	// gradient base.
	Defaults pipeline.Options

	Logger       *log.Logger
	MaxBodyBytes int64
}

// Server handles funnel render requests.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	maxBody  int64
	router   chi.Router
}

// New builds a server and its routes. A nil runner renders without a cache.
func New(cfg Config) *Server {
	s := &Server{
		runner:   cfg.Runner,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
		maxBody:  cfg.MaxBodyBytes,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/validate", s.handleValidate)
	r.Post("/render/{format}", s.handleRender)

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
