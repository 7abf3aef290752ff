// Package server hosts interactive widget instances over HTTP.
//
// Every page load creates an instance: a server-side controller that the
// page's script feeds with pointer events and whose frames it applies to the
// SVG. Static renders of the configured widget are served through the
// pipeline and its cache.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/arcslider/pkg/config"
	"github.com/matzehuels/arcslider/pkg/observability"
	"github.com/matzehuels/arcslider/pkg/pipeline"
	"github.com/matzehuels/arcslider/pkg/session"
)

// DefaultSweepInterval is how often expired instances are removed.
const DefaultSweepInterval = time.Minute

// maxBodyBytes bounds request bodies; widget definitions are small.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Config *config.Config
	Runner *pipeline.Runner
	Store  session.Store
	Logger *log.Logger

	// SweepInterval defaults to DefaultSweepInterval.
	SweepInterval time.Duration
}

// Server serves widget pages, instances and static renders.
type Server struct {
	cfg    atomic.Pointer[config.Config]
	runner *pipeline.Runner
	store  session.Store
	logger *log.Logger
	sweep  time.Duration
}

// New creates a server. A nil Config means config.Default(); a nil Store
// means an in-memory store sized from the config.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	store := opts.Store
	if store == nil {
		store = session.NewMemoryStore(cfg.Server.MaxInstances)
	}
	sweep := opts.SweepInterval
	if sweep <= 0 {
		sweep = DefaultSweepInterval
	}

	s := &Server{
		runner: runner,
		store:  store,
		logger: logger.WithPrefix("server"),
		sweep:  sweep,
	}
	s.cfg.Store(cfg)
	return s
}

// Config returns the active configuration.
func (s *Server) Config() *config.Config { return s.cfg.Load() }

// SetConfig swaps the configuration. Existing instances keep the widget
// they were created with; new pages and static renders use cfg.
func (s *Server) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.cfg.Store(cfg)
	s.logger.Info("configuration reloaded", "sliders", len(cfg.Widget.Sliders))
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Get("/widget.svg", s.handleStatic(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/widget.png", s.handleStatic(pipeline.FormatPNG, "image/png"))
	r.Get("/widget.json", s.handleStatic(pipeline.FormatJSON, "application/json"))

	r.Route("/api/widgets", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/pointer", s.handlePointer)
			r.Get("/widget.svg", s.handleInstanceSVG)
		})
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// Sweep removes expired instances once.
func (s *Server) Sweep(ctx context.Context) int {
	removed, err := s.store.Cleanup(ctx)
	if err != nil {
		s.logger.Warn("instance cleanup failed", "err", err)
		return 0
	}
	hooks := observability.Interaction()
	for _, id := range removed {
		hooks.OnInstanceExpired(ctx, id)
	}
	if len(removed) > 0 {
		s.logger.Debug("expired instances", "count", len(removed), "live", s.store.Len())
	}
	return len(removed)
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
