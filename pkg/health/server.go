// Package health serves the operational endpoints: liveness, readiness,
// agent status, circuit breaker control, and Prometheus metrics.
package health

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/naisu-fi/naisu-agent/pkg/circuitbreaker"
	"github.com/naisu-fi/naisu-agent/pkg/listener"
	"github.com/naisu-fi/naisu-agent/pkg/store"
)

// Server represents the health and metrics HTTP server
type Server struct {
	port          string
	network       string
	listener      *listener.Listener
	breaker       *circuitbreaker.CircuitBreaker
	store         store.Store
	metricsAPIKey string
}

// NewServer creates a new health check server
func NewServer(port, network string, l *listener.Listener, breaker *circuitbreaker.CircuitBreaker, st store.Store, metricsAPIKey string) *Server {
	return &Server{
		port:          port,
		network:       network,
		listener:      l,
		breaker:       breaker,
		store:         st,
		metricsAPIKey: metricsAPIKey,
	}
}

// metricsAuthMiddleware is a middleware that checks for a valid API key
func (s *Server) metricsAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth if no API key is configured
		if s.metricsAPIKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		if parts[1] != s.metricsAPIKey {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler builds the health server routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if s.listener == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("Event listener not connected"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Ready"))
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		circuitStatus := "closed"
		if s.breaker != nil && s.breaker.IsOpen() {
			circuitStatus = "open"
		}

		status := map[string]interface{}{
			"network": s.network,
			"circuit": circuitStatus,
		}
		if s.listener != nil {
			status["ingest_mode"] = string(s.listener.Mode())
			status["last_block"] = s.listener.LastBlock()
		}
		if s.store != nil {
			intents := s.store.List()
			pending := 0
			for _, intent := range intents {
				if !intent.Status.IsTerminal() {
					pending++
				}
			}
			status["total_intents"] = len(intents)
			status["pending_intents"] = pending
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Printf("Error encoding status JSON: %v", err)
		}
	})

	mux.HandleFunc("/circuit/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if s.breaker == nil {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("No circuit breaker configured"))
			return
		}

		s.breaker.Reset()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Circuit breaker reset"))
	})

	// Expose Prometheus metrics with API key authentication
	mux.Handle("/metrics", s.metricsAuthMiddleware(promhttp.Handler()))

	return mux
}

// Start starts the health check server
func (s *Server) Start() {
	log.Printf("Starting health and metrics server on port %s", s.port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", s.port), s.Handler()); err != nil {
		log.Printf("Health server error: %v", err)
	}
}
