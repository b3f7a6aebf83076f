// Package server exposes the layout pipeline over HTTP.
//
// The API is a small JSON surface:
//
//	POST   /api/v1/layouts       compute a layout for a posted graph
//	GET    /api/v1/layouts/{id}  fetch a previously computed layout
//	DELETE /api/v1/layouts/{id}  remove a stored layout
//	GET    /api/v1/graphs/{hash} fetch a previously posted graph by hash
//	GET    /healthz              liveness probe
//
// Computed layouts are persisted through a store.LayoutStore so clients
// can poll results by ID.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/forcelay/forcelay/pkg/observability"
	"github.com/forcelay/forcelay/pkg/pipeline"
	"github.com/forcelay/forcelay/pkg/store"
)

// Server wires the pipeline runner and the layout store behind a chi
// router.
type Server struct {
	runner *pipeline.Runner
	store  store.LayoutStore
	logger *log.Logger
	router chi.Router
}

// Options configures a Server. Zero-valued fields get working defaults:
// an uncached runner, an in-memory store, and the default logger.
type Options struct {
	Runner *pipeline.Runner
	Store  store.LayoutStore
	Logger *log.Logger
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}

	s := &Server{
		runner: opts.Runner,
		store:  opts.Store,
		logger: opts.Logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases the runner and store resources.
func (s *Server) Close(ctx context.Context) error {
	err := s.runner.Close()
	if serr := s.store.Close(ctx); serr != nil && err == nil {
		err = serr
	}
	return err
}

// routes builds the router with logging and recovery middleware.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/layouts", s.handleComputeLayout)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Delete("/layouts/{id}", s.handleDeleteLayout)
		r.Get("/graphs/{hash}", s.handleGetGraph)
	})

	return r
}

// requestLogger logs each request with its status and duration, and feeds
// the API observability hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed)
	})
}

// handleHealth responds to liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
