// Package server provides the HTTP API for Ruigo.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/ruigo/internal/config"
	"github.com/hyperjump/ruigo/internal/engine"
	"github.com/hyperjump/ruigo/internal/keyword"
	"github.com/hyperjump/ruigo/internal/storage"
)

// Server is the HTTP server for the Ruigo API.
type Server struct {
	engine    *engine.Engine
	storage   storage.Storage
	index     keyword.WordIndex
	suggester *keyword.Suggester
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
// index and suggester may be nil; the search and suggestion features are
// then disabled.
func NewServer(
	eng *engine.Engine,
	st storage.Storage,
	index keyword.WordIndex,
	suggester *keyword.Suggester,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:    eng,
		storage:   st,
		index:     index,
		suggester: suggester,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/api/v1/words", s.handleListWords)
	r.Get("/api/v1/words/{word}", s.handleGetWord)
	r.Get("/api/v1/words/{word}/similar", s.handleSimilar)
	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
