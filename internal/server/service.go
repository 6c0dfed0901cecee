// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/quizdedup/internal/config"
	"github.com/thebtf/quizdedup/internal/store/sqlite"
)

// Service configuration constants.
const (
	// DefaultHTTPTimeout bounds request handling, including full analysis runs.
	DefaultHTTPTimeout = 120 * time.Second

	// ShutdownTimeout is how long Shutdown waits for in-flight requests.
	ShutdownTimeout = 30 * time.Second
)

// Service is the HTTP analysis service.
type Service struct {
	version string
	config  *config.Config

	store       *sqlite.Store
	itemStore   *sqlite.ItemStore
	reportStore *sqlite.ReportStore

	router *chi.Mux
	server *http.Server

	startTime time.Time
}

// NewService creates the service. When withStore is true the item and
// report stores are opened at the configured DB path; otherwise the
// service only accepts inline corpora on /api/analyze.
func NewService(version string, cfg *config.Config, withStore bool) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	svc := &Service{
		version:   version,
		config:    cfg,
		router:    chi.NewRouter(),
		startTime: time.Now(),
	}

	if withStore {
		if err := config.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
		store, err := sqlite.NewStore(sqlite.StoreConfig{Path: cfg.DBPath})
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		svc.store = store
		svc.itemStore = sqlite.NewItemStore(store)
		svc.reportStore = sqlite.NewReportStore(store)
	}

	svc.routes()
	return svc, nil
}

func (s *Service) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Timeout(DefaultHTTPTimeout))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Post("/analyze", s.handleAnalyze)
		if s.reportStore != nil {
			r.Get("/reports/latest", s.handleLatestReport)
			r.Get("/reports/{runID}", s.handleGetReport)
		}
	})
}

// Start begins serving on the configured port. Blocks until the listener
// fails or the server is shut down.
func (s *Service) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.ServerPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Int("port", s.config.ServerPort).Str("version", s.version).Msg("HTTP service listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Service) Shutdown(ctx context.Context) error {
	var errs []error
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Router exposes the handler tree for tests.
func (s *Service) Router() http.Handler {
	return s.router
}

// requestLogger logs each request with method, path, status, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}
