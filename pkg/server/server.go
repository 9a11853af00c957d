package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	// MaxLayouts bounds the number of layouts kept in memory.
	MaxLayouts int
	// IdleTTL drops layouts not used for this long.
	IdleTTL time.Duration
	// Defaults supplies width, padding, spacing and seed for requests that
	// omit them.
	Defaults pipeline.Options
}

// Server is the HTTP API.
type Server struct {
	registry *Registry
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. A nil logger discards output.
func New(opts Options, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	reg, err := NewRegistry(opts.MaxLayouts, opts.IdleTTL)
	if err != nil {
		return nil, err
	}
	s := &Server{
		registry: reg,
		defaults: opts.Defaults,
		logger:   logger.WithPrefix("server"),
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Registry returns the layout registry.
func (s *Server) Registry() *Registry { return s.registry }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Put("/width", s.handleResize)
			r.Get("/frames", s.handleFramesInRect)
			r.Get("/frames/{index}", s.handleFrame)
			r.Get("/render.svg", s.handleRenderSVG)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired layouts are purged once a minute.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx, time.Minute)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.registry.Cleanup(); n > 0 {
				s.logger.Debug("dropped idle layouts", "count", n)
			}
		}
	}
}
