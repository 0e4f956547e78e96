package engagement

import (
	"math"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/store"
)

// Scorer derives the bounded engagement score and the qualitative
// insight signals built on top of it.
type Scorer struct {
	store       *store.Memory
	badges      *BadgeEngine
	leaderboard *LeaderboardBuilder
}

// NewScorer creates an engagement scorer.
func NewScorer(st *store.Memory, badges *BadgeEngine, lb *LeaderboardBuilder) *Scorer {
	return &Scorer{store: st, badges: badges, leaderboard: lb}
}

// EngagementScore computes the weighted, capped composite:
//
//	min(points/100, 50) + min(streak×5, 30) + min(achievements×10, 20)
//
// rounded and bounded to [0,100].
func EngagementScore(state domain.UserState) int {
	pointsPart := math.Min(float64(state.Points)/100, 50)
	streakPart := math.Min(float64(state.Streak.Current)*5, 30)
	achPart := math.Min(float64(len(state.Achievements))*10, 20)
	return int(math.Round(pointsPart + streakPart + achPart))
}

// Metrics assembles the per-user gamification summary.
// LeaderboardRank is 0 when the user is outside the top 100.
func (sc *Scorer) Metrics(userID string) (domain.Metrics, error) {
	if userID == "" {
		return domain.Metrics{}, domain.ErrInvalidUserID
	}

	state := sc.store.Get(userID)
	return domain.Metrics{
		TotalPoints:          state.Points,
		CurrentStreak:        state.Streak.Current,
		AchievementsUnlocked: len(state.Achievements),
		BadgesEarned:         sc.badges.countFor(state),
		LeaderboardRank:      sc.leaderboard.Rank(userID),
		EngagementScore:      EngagementScore(state),
	}, nil
}

// Insights classifies motivation and derives recommendations and risk
// factors from simple threshold checks.
func (sc *Scorer) Insights(userID string) (domain.Insights, error) {
	if userID == "" {
		return domain.Insights{}, domain.ErrInvalidUserID
	}

	state := sc.store.Get(userID)
	score := EngagementScore(state)

	out := domain.Insights{
		EngagementScore:    score,
		MotivationLevel:    motivationFor(score),
		RecommendedActions: []string{},
		RiskFactors:        []string{},
	}

	if state.Streak.Current < 3 {
		out.RiskFactors = append(out.RiskFactors, "Low activity streak")
		out.RecommendedActions = append(out.RecommendedActions, "Try daily challenges to build a streak")
	}
	if state.Points < 1000 {
		out.RecommendedActions = append(out.RecommendedActions, "Focus on completing courses to earn points")
	}
	if rank := sc.leaderboard.Rank(userID); rank > 50 {
		out.RecommendedActions = append(out.RecommendedActions, "Join study groups to climb the leaderboard")
	}

	return out, nil
}

// motivationFor maps an engagement score to its motivation band.
func motivationFor(score int) domain.MotivationLevel {
	switch {
	case score >= 80:
		return domain.MotivationHigh
	case score >= 60:
		return domain.MotivationMedium
	default:
		return domain.MotivationLow
	}
}
