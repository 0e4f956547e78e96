package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/motiva-learn/motiva/internal/app/engagement"
	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/infra/metrics"
)

// ─── Points ─────────────────────────────────────────────────────────────────

type calculatePointsRequest struct {
	Type       string  `json:"type"`
	Difficulty string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard expert"`
	Duration   float64 `json:"duration" validate:"gte=0"`
	Bonus      float64 `json:"bonus" validate:"gte=0"`
}

func (s *Server) handleCalculatePoints(w http.ResponseWriter, r *http.Request) {
	var req calculatePointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	activity := domain.Activity{
		Type:        req.Type,
		Difficulty:  domain.Difficulty(req.Difficulty),
		DurationMin: req.Duration,
		Bonus:       req.Bonus,
	}
	points, err := engagement.CalculatePoints(&activity)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = string(domain.DifficultyMedium)
	}
	metrics.ActivitiesScored.WithLabelValues(difficulty).Inc()

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}

type addPointsRequest struct {
	Points int `json:"points"`
}

func (s *Server) handleAddPoints(w http.ResponseWriter, r *http.Request) {
	var req addPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := s.ledger.AddPoints(chi.URLParam(r, "userID"), req.Points)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"total": total})
}

func (s *Server) handleUserPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.ledger.UserPoints(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}

// ─── Streaks ────────────────────────────────────────────────────────────────

type updateStreakRequest struct {
	Days int `json:"days"`
}

func (s *Server) handleUpdateStreak(w http.ResponseWriter, r *http.Request) {
	var req updateStreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	streak, err := s.streaks.UpdateStreak(chi.URLParam(r, "userID"), req.Days)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleResetStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.streaks.ResetStreak(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.streaks.Streak(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) handleStreakBonus(w http.ResponseWriter, r *http.Request) {
	bonus, err := s.streaks.StreakBonus(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"bonus": bonus})
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.streaks.Milestones(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"milestones": milestones})
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	newly, err := s.achievements.CheckAndUnlock(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if newly == nil {
		newly = []domain.UnlockedAchievement{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"unlocked": newly})
}

func (s *Server) handleUserAchievements(w http.ResponseWriter, r *http.Request) {
	ids, err := s.achievements.UserAchievements(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"achievements": ids})
}

func (s *Server) handleAchievementCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": s.achievements.Definitions(),
		"badges":       engagement.BadgeCatalog(),
	})
}

func (s *Server) handleAchievementProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.achievements.Progress(
		chi.URLParam(r, "userID"), chi.URLParam(r, "achievementID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	// Unknown id is "no data", not an error.
	writeJSON(w, http.StatusOK, map[string]*domain.Progress{"progress": progress})
}

// ─── Badges ─────────────────────────────────────────────────────────────────

func (s *Server) handleUserBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.badges.UserBadges(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

func (s *Server) handleBadgeProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.badges.Progress(
		chi.URLParam(r, "userID"), chi.URLParam(r, "badgeID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*domain.Progress{"progress": progress})
}

// ─── Leaderboard / Tiers ────────────────────────────────────────────────────

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all_time"
	}
	writeJSON(w, http.StatusOK, s.leaderboard.Leaderboard(period))
}

func (s *Server) handleRewardTier(w http.ResponseWriter, r *http.Request) {
	tier, err := s.tiers.RewardTier(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tier)
}

type generateRewardsRequest struct {
	Interests []string `json:"interests" validate:"max=20,dive,min=1"`
}

func (s *Server) handleGenerateRewards(w http.ResponseWriter, r *http.Request) {
	var req generateRewardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	suggestions, err := s.tiers.GenerateRewards(
		chi.URLParam(r, "userID"), domain.UserProfile{Interests: req.Interests})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rewards": suggestions})
}

// ─── Metrics / Insights ─────────────────────────────────────────────────────

func (s *Server) handleUserMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.scorer.Metrics(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := s.scorer.Insights(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// ─── Courses ────────────────────────────────────────────────────────────────

type setCoursesRequest struct {
	Completed int `json:"completed" validate:"gte=0"`
}

func (s *Server) handleSetCourses(w http.ResponseWriter, r *http.Request) {
	var req setCoursesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.ledger.SetCoursesCompleted(chi.URLParam(r, "userID"), req.Completed); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"completed": req.Completed})
}

func (s *Server) handleIncrementCourses(w http.ResponseWriter, r *http.Request) {
	completed, err := s.ledger.IncrementCoursesCompleted(chi.URLParam(r, "userID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"completed": completed})
}

// ─── Feed ───────────────────────────────────────────────────────────────────

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	events := s.feed.Pending(chi.URLParam(r, "userID"))
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (s *Server) handleFeedSeen(w http.ResponseWriter, r *http.Request) {
	if !s.feed.MarkSeen(chi.URLParam(r, "userID"), chi.URLParam(r, "eventID")) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
