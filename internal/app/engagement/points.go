// Package engagement implements the Motiva gamification engine.
// Points, streaks, achievements, badges, tiers, leaderboard, insights.
// Every operation validates input before any state write.
package engagement

import (
	"math"
	"time"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/infra/metrics"
	"github.com/motiva-learn/motiva/internal/store"
)

// Ledger computes activity scores and applies additive point updates.
// Point totals are monotonic — no operation subtracts.
type Ledger struct {
	store        *store.Memory
	achievements *AchievementEngine
	feed         *Feed // nil disables tier promotion events
}

// NewLedger creates a points ledger. Achievement re-evaluation runs as a
// side effect of AddPoints, so the ledger owns a reference to the engine.
func NewLedger(st *store.Memory, ach *AchievementEngine, feed *Feed) *Ledger {
	return &Ledger{store: st, achievements: ach, feed: feed}
}

// CalculatePoints scores an activity. Pure — no state is touched.
//
//	base  = duration × difficulty multiplier
//	bonus = base × activity.Bonus
//	score = round(base + bonus)
func CalculatePoints(activity *domain.Activity) (int, error) {
	if activity == nil {
		return 0, domain.ErrInvalidActivity
	}

	base := activity.DurationMin * activity.Difficulty.Multiplier()
	bonus := base * activity.Bonus
	return int(math.Round(base + bonus)), nil
}

// AddPoints adds points to the user's total, stamps LastActivity, then
// re-evaluates achievements for that user. Returns the new total.
func (l *Ledger) AddPoints(userID string, points int) (int, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	if points < 0 {
		return 0, domain.ErrInvalidPoints
	}

	var before int
	state := l.store.Update(userID, func(s *domain.UserState) {
		before = s.Points
		s.Points += points
		s.LastActivity = time.Now()
	})

	metrics.PointsAwarded.Add(float64(points))
	metrics.UsersTracked.Set(float64(l.store.Len()))

	// Unlock side effect. Newly unlocked achievements surface through
	// the returned list of CheckAndUnlock and through the feed.
	l.achievements.checkUser(userID)

	if l.feed != nil {
		prevTier := TierForPoints(before).Tier
		if newTier := TierForPoints(state.Points).Tier; newTier != prevTier {
			l.feed.RecordTierPromotion(userID, newTier)
		}
	}

	return state.Points, nil
}

// UserPoints returns the user's current total (0 for a first-touch user).
func (l *Ledger) UserPoints(userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	return l.store.Get(userID).Points, nil
}

// SetCoursesCompleted records the externally owned completed-course count.
// Deliberate extension point: course progress is tracked by the learning
// platform, not derived by this engine.
func (l *Ledger) SetCoursesCompleted(userID string, completed int) error {
	if userID == "" {
		return domain.ErrInvalidUserID
	}
	if completed < 0 {
		return domain.ErrInvalidCourses
	}
	l.store.Update(userID, func(s *domain.UserState) {
		s.CoursesCompleted = completed
		s.LastActivity = time.Now()
	})
	l.achievements.checkUser(userID)
	return nil
}

// IncrementCoursesCompleted bumps the completed-course count by one.
func (l *Ledger) IncrementCoursesCompleted(userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	state := l.store.Update(userID, func(s *domain.UserState) {
		s.CoursesCompleted++
		s.LastActivity = time.Now()
	})
	l.achievements.checkUser(userID)
	return state.CoursesCompleted, nil
}
