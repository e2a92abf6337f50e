// Package api provides the HTTP server for Sundial: check-in submission,
// streaks, awards, insights, and notification management.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sundial-app/sundial/internal/app/checkin"
	"github.com/sundial-app/sundial/internal/app/engagement"
	"github.com/sundial-app/sundial/internal/app/insights"
	"github.com/sundial-app/sundial/internal/health"
	"github.com/sundial-app/sundial/internal/infra/sqlite"
)

// Server is the Sundial HTTP API server.
type Server struct {
	db             *sqlite.DB
	checkins       *checkin.Service
	streaks        *engagement.StreakService
	evaluator      *engagement.Evaluator
	notifier       *engagement.Notifier
	insights       *insights.Service
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server over the wired services.
func NewServer(db *sqlite.DB, checkins *checkin.Service, streaks *engagement.StreakService, evaluator *engagement.Evaluator, notifier *engagement.Notifier, ins *insights.Service) *Server {
	return &Server{
		db:        db,
		checkins:  checkins,
		streaks:   streaks,
		evaluator: evaluator,
		notifier:  notifier,
		insights:  ins,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker for /health reporting.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/checkins", s.handleSubmitCheckIn)
		r.Get("/checkins", s.handleListCheckIns)
		r.Get("/checkins/{id}", s.handleGetCheckIn)

		r.Get("/streak", s.handleStreak)
		r.Post("/streak/reset", s.handleStreakReset)

		r.Get("/achievements", s.handleAchievements)
		r.Get("/badges", s.handleBadges)

		r.Route("/insights", func(r chi.Router) {
			r.Get("/trend", s.handleTrend)
			r.Get("/words", s.handleWords)
			r.Get("/calendar", s.handleCalendar)
		})

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/read", s.handleNotificationRead)
		r.Delete("/notifications/{id}", s.handleNotificationDelete)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]interface{}{
		"status": map[bool]string{true: "ok", false: "degraded"}[s.health.IsHealthy()],
		"checks": s.health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
