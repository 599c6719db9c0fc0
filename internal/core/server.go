// Package core provides the HTTP chassis for `holocene serve`: the server
// object, global middleware, response helpers, request validation and the
// health endpoint. Domain handlers live in internal/api/handlers and attach
// themselves through RouteRegistrars.
package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/config"
	"holocene/internal/db"
)

// StoreHealth is the slice of *db.Stores the server needs: health probing and
// release on shutdown.
type StoreHealth interface {
	Ping(ctx context.Context) []db.StoreStatus
	Close() error
}

// Server holds the dependencies shared by every request.
type Server struct {
	Config    *config.Config
	Repos     *db.Repositories
	Stores    StoreHealth
	Logger    zerolog.Logger
	Validator *Validator

	// RouteRegistrars mount domain handlers under /v1. They are populated by
	// the entry point so core never imports the handler package.
	RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer wires a Server. It fails fast when a required dependency is nil.
func NewServer(cfg *config.Config, repos *db.Repositories, stores StoreHealth, logger zerolog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if repos == nil {
		return nil, fmt.Errorf("repositories must not be nil")
	}
	if stores == nil {
		return nil, fmt.Errorf("stores must not be nil")
	}

	return &Server{
		Config:    cfg,
		Repos:     repos,
		Stores:    stores,
		Logger:    logger,
		Validator: NewValidator(logger),
		router:    chi.NewRouter(),
	}, nil
}

// Handler returns the root handler for http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router exposes the chi mux for route registration and tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown releases the database pools.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info().Msg("server shutdown initiated")

	if err := s.Stores.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("error closing stores")
		return fmt.Errorf("closing stores: %w", err)
	}

	s.Logger.Info().Msg("server shutdown complete")
	return nil
}
