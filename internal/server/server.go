// Package server provides the HTTP API for pairing archived headlines.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/abdulachik/novelpair/internal/db"
	"github.com/abdulachik/novelpair/internal/pairer"
	"github.com/abdulachik/novelpair/internal/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultHeadlineLimit = 50
	defaultPairWindow    = 24 * time.Hour
	defaultMaxHeadlines  = 500
)

// Server is the HTTP server for the pairing API.
type Server struct {
	store        *db.Store
	pairer       *pairer.Pairer
	health       *scheduler.Health
	pairWindow   time.Duration
	maxHeadlines int
	defaultPairs int
	addr         string
	server       *http.Server
}

// Config holds server configuration.
type Config struct {
	Addr         string
	Store        *db.Store
	Pairer       *pairer.Pairer
	Health       *scheduler.Health // Optional: /health reports ok without it
	PairWindow   time.Duration     // How far back headlines are paired (default: 24h)
	MaxHeadlines int               // default: 500
	DefaultPairs int               // n when the request has none (default: 5)
}

// New creates a server with the given dependencies.
func New(cfg Config) *Server {
	window := cfg.PairWindow
	if window <= 0 {
		window = defaultPairWindow
	}

	maxHeadlines := cfg.MaxHeadlines
	if maxHeadlines <= 0 {
		maxHeadlines = defaultMaxHeadlines
	}

	defaultPairs := cfg.DefaultPairs
	if defaultPairs <= 0 {
		defaultPairs = pairer.DefaultPairs
	}

	health := cfg.Health
	if health == nil {
		health = scheduler.NewHealth()
	}

	return &Server{
		store:        cfg.Store,
		pairer:       cfg.Pairer,
		health:       health,
		pairWindow:   window,
		maxHeadlines: maxHeadlines,
		defaultPairs: defaultPairs,
		addr:         cfg.Addr,
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/headlines", s.handleHeadlines)
	r.Get("/pairs", s.handlePairs)
	r.Get("/runs/latest", s.handleLatestRun)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("starting HTTP server", "addr", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
