// Package server provides a local stand-in for the inference backend.
//
// It serves the same routes and error shapes as the real backend, answering
// from a keyword catalog instead of trained models, so the clients can be run
// and tested without the model files.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/paperscope/internal/config"
	"github.com/hyperjump/paperscope/internal/models"
	"go.uber.org/zap"
)

// Backend answers prediction and recommendation queries.
type Backend interface {
	Predict(text string, topK int) ([]models.Prediction, error)
	Recommend(query string, k int) ([]models.Recommendation, error)
	Loaded() bool
	Path() string
}

// Server is the HTTP server for the stub backend.
type Server struct {
	backend Backend
	config  *config.StubConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(backend Backend, cfg *config.StubConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		backend: backend,
		config:  cfg,
		logger:  logger,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)

	r.Post(models.PredictPath, s.handlePredict)
	r.Post(models.RecommendPath, s.handleRecommend)
	r.Get(models.HealthPath, s.handleHealth)
	return r
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.Addr()
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting stub backend", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware allows any origin, for browser clients during local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
