// Package api exposes the agent's HTTP surface: intent creation and
// lookup, the bridge transaction callback, and the supporting catalogue,
// quote, and advisor endpoints.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/naisu-fi/naisu-agent/pkg/logger"
	"github.com/naisu-fi/naisu-agent/pkg/orchestrator"
	"github.com/naisu-fi/naisu-agent/pkg/store"
)

// Config holds the API server configuration
type Config struct {
	Port int
	// ProcessTimeout bounds how long a SuiToEvm intent may wait for its
	// bridge transaction and attestation before failing
	ProcessTimeout time.Duration
}

// Server is the agent's HTTP API
type Server struct {
	cfg    Config
	router *chi.Mux
	store  store.Store
	orch   *orchestrator.Orchestrator
	nonces *orchestrator.NonceRegistry
	rates  *RateCache
	logger logger.Logger
}

// NewServer wires the API over the store, orchestrator, and nonce registry
func NewServer(cfg Config, st store.Store, orch *orchestrator.Orchestrator, nonces *orchestrator.NonceRegistry, log logger.Logger) *Server {
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = 10 * time.Minute
	}

	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		store:  st,
		orch:   orch,
		nonces: nonces,
		rates:  NewRateCache(5 * time.Minute),
		logger: log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/intents", s.handleCreateIntent)
		r.Get("/intents", s.handleListIntents)
		r.Get("/intents/{id}", s.handleGetIntent)
		r.Get("/intents/{id}/status", s.handleGetIntentStatus)
		r.Post("/intents/{id}/bridge", s.handleBridgeCallback)
		r.Get("/users/{address}/intents", s.handleListUserIntents)
		r.Get("/bridge/status", s.handleBridgeStatus)
		r.Get("/bridge/fee", s.handleBridgeFee)
		r.Get("/chains", s.handleListChains)
		r.Get("/chains/status", s.handleChainStatus)
		r.Get("/strategies", s.handleListStrategies)
		r.Post("/quotes", s.handleQuote)
		r.Post("/chat", s.handleChat)
		r.Get("/ai/health", s.handleAdvisorHealth)
	})
}

// Router returns the underlying handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves the API until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening on port %d", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data}); err != nil {
		s.logger.Error("Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	msg := fmt.Sprintf(format, args...)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: false, Error: msg}); err != nil {
		s.logger.Error("Failed to encode error response: %v", err)
	}
}
