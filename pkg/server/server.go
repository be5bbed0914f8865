// Package server exposes live wheels over HTTP.
//
// Routes:
//
//	GET    /healthz                 liveness and version
//	POST   /wheels                  create a wheel from a partial config
//	GET    /wheels/{id}             current frame
//	POST   /wheels/{id}/scroll      scroll by dy or replay deltas
//	POST   /wheels/{id}/layout      lay the wheel out again from item 0
//	GET    /wheels/{id}/render      render the current frame (?format=svg|png|pdf|json)
//	DELETE /wheels/{id}             drop the wheel
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}} using the
// codes of package errors.
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

	"github.com/matzehuels/ferris/pkg/cache"
	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/session"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Minute
)

// Server serves wheel sessions.
type Server struct {
	store    session.Store
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	logger   *log.Logger
	defaults func() *config.Config
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache caches rendered artifacts in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		if c != nil {
			s.cache, s.ttl = c, ttl
		}
	}
}

// WithDefaults sets the factory for the configuration that create
// requests are applied over. It must return a fresh value on every call.
func WithDefaults(fn func() *config.Config) Option {
	return func(s *Server) {
		if fn != nil {
			s.defaults = fn
		}
	}
}

// New creates a server over store.
func New(store session.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		logger:   log.New(io.Discard),
		defaults: config.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/wheels", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/scroll", s.handleScroll)
			r.Post("/layout", s.handleLayout)
			r.Get("/render", s.handleRender)
		})
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept in the background when the store
// supports it.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ms, ok := s.store.(*session.MemoryStore); ok {
		go ms.RunCleanup(ctx, cleanupInterval)
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
