// Package api serves the dashboard's JSON API behind the login gate.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MikeSquared-Agency/echoes/internal/auth"
	"github.com/MikeSquared-Agency/echoes/internal/normalize"
)

// Loader produces a fresh canonical table. *pipeline.Pipeline satisfies it.
type Loader interface {
	Load(ctx context.Context) ([]normalize.Message, error)
	Zone() *time.Location
}

// Options configures the Server.
type Options struct {
	Port        int
	People      []string // senders listed in the overview, in order
	CORSOrigins []string
}

type Server struct {
	router *chi.Mux
	srv    *http.Server
	loader Loader
	gate   *auth.Gate
	people []string
	logger *slog.Logger
}

func NewServer(opts Options, loader Loader, gate *auth.Gate, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	s := &Server{
		router: router,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		loader: loader,
		gate:   gate,
		people: opts.People,
		logger: logger,
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/echoes/status", s.status)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/messages", s.messages)
			r.Get("/overview", s.overview)
			r.Get("/timeline", s.timeline)
		})
	})

	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown; it returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service":       "echoes",
		"status":        "ok",
		"login_enabled": s.gate.Enabled(),
		"zone":          s.loader.Zone().String(),
	})
}
