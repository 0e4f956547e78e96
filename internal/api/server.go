// Package api provides the HTTP server for Motiva.
// It exposes the gamification engine as a JSON REST API for the
// presentation layer.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/motiva-learn/motiva/internal/app/engagement"
	"github.com/motiva-learn/motiva/internal/domain"
)

// Server is the Motiva HTTP API server.
type Server struct {
	ledger       *engagement.Ledger
	streaks      *engagement.Tracker
	achievements *engagement.AchievementEngine
	badges       *engagement.BadgeEngine
	leaderboard  *engagement.LeaderboardBuilder
	tiers        *engagement.TierCalculator
	scorer       *engagement.Scorer
	feed         *engagement.Feed

	validate       *validator.Validate
	metricsEnabled bool
}

// NewServer creates an API server over the wired engine services.
func NewServer(
	ledger *engagement.Ledger,
	streaks *engagement.Tracker,
	achievements *engagement.AchievementEngine,
	badges *engagement.BadgeEngine,
	leaderboard *engagement.LeaderboardBuilder,
	tiers *engagement.TierCalculator,
	scorer *engagement.Scorer,
	feed *engagement.Feed,
) *Server {
	return &Server{
		ledger:       ledger,
		streaks:      streaks,
		achievements: achievements,
		badges:       badges,
		leaderboard:  leaderboard,
		tiers:        tiers,
		scorer:       scorer,
		feed:         feed,
		validate:     validator.New(),
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": "0.1.0"})
	})

	r.Route("/api/gamification", func(r chi.Router) {
		r.Post("/points/calculate", s.handleCalculatePoints)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/achievements/catalog", s.handleAchievementCatalog)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Post("/points", s.handleAddPoints)
			r.Get("/points", s.handleUserPoints)

			r.Put("/streak", s.handleUpdateStreak)
			r.Delete("/streak", s.handleResetStreak)
			r.Get("/streak", s.handleStreak)
			r.Get("/streak/bonus", s.handleStreakBonus)
			r.Get("/streak/milestones", s.handleMilestones)

			r.Post("/achievements/check", s.handleCheckAchievements)
			r.Get("/achievements", s.handleUserAchievements)
			r.Get("/achievements/{achievementID}/progress", s.handleAchievementProgress)

			r.Get("/badges", s.handleUserBadges)
			r.Get("/badges/{badgeID}/progress", s.handleBadgeProgress)

			r.Get("/tier", s.handleRewardTier)
			r.Post("/rewards", s.handleGenerateRewards)

			r.Get("/metrics", s.handleUserMetrics)
			r.Get("/insights", s.handleInsights)

			r.Put("/courses", s.handleSetCourses)
			r.Post("/courses/increment", s.handleIncrementCourses)

			r.Get("/feed", s.handleFeed)
			r.Post("/feed/{eventID}/seen", s.handleFeedSeen)
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
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

// writeEngineError maps engine validation errors to 400 and everything
// else to 500. Validation failures happen before any state write, so the
// caller can retry with corrected input.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidPoints),
		errors.Is(err, domain.ErrInvalidStreak),
		errors.Is(err, domain.ErrInvalidCourses),
		errors.Is(err, domain.ErrInvalidActivity):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the dashboard front end.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
