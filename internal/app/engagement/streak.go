package engagement

import (
	"math"
	"time"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/store"
)

// streakBonusRate approximates 50 bonus points for a 7-day streak.
const streakBonusRate = 7.14

// streakBonus converts a day count to bonus points. Shared by the
// tracker and reward suggestions so the formula cannot drift.
func streakBonus(days int) int {
	return int(math.Round(float64(days) * streakBonusRate))
}

// Tracker manages consecutive-activity streaks.
// Current is set by the caller (the platform decides what counts as an
// active day); Longest is a monotonic historical record.
type Tracker struct {
	store *store.Memory
}

// NewTracker creates a streak tracker.
func NewTracker(st *store.Memory) *Tracker {
	return &Tracker{store: st}
}

// UpdateStreak sets the current streak to days and raises Longest if
// surpassed. Returns the updated streak record.
func (t *Tracker) UpdateStreak(userID string, days int) (domain.Streak, error) {
	if userID == "" {
		return domain.Streak{}, domain.ErrInvalidUserID
	}
	if days < 0 {
		return domain.Streak{}, domain.ErrInvalidStreak
	}

	state := t.store.Update(userID, func(s *domain.UserState) {
		s.Streak.Current = days
		if days > s.Streak.Longest {
			s.Streak.Longest = days
		}
		now := time.Now()
		s.Streak.LastActivity = now
		s.LastActivity = now
	})
	return state.Streak, nil
}

// ResetStreak zeroes the current streak. Longest is untouched.
func (t *Tracker) ResetStreak(userID string) (domain.Streak, error) {
	if userID == "" {
		return domain.Streak{}, domain.ErrInvalidUserID
	}

	state := t.store.Update(userID, func(s *domain.UserState) {
		s.Streak.Current = 0
		now := time.Now()
		s.Streak.LastActivity = now
		s.LastActivity = now
	})
	return state.Streak, nil
}

// Streak returns the user's current streak record without mutation.
func (t *Tracker) Streak(userID string) (domain.Streak, error) {
	if userID == "" {
		return domain.Streak{}, domain.ErrInvalidUserID
	}
	return t.store.Get(userID).Streak, nil
}

// StreakBonus returns round(current × 7.14) bonus points. Pure read.
func (t *Tracker) StreakBonus(userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrInvalidUserID
	}
	return streakBonus(t.store.Get(userID).Streak.Current), nil
}

// Milestones returns the fixed streak milestone ladder with achieved
// flags for the user's current streak. Purely derived.
func (t *Tracker) Milestones(userID string) ([]domain.Milestone, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	current := t.store.Get(userID).Streak.Current

	ladder := []struct {
		days   int
		reward string
	}{
		{3, "Bronze flame"},
		{7, "Silver flame"},
		{14, "Gold flame"},
		{30, "Platinum flame"},
		{100, "Eternal flame"},
	}

	out := make([]domain.Milestone, 0, len(ladder))
	for _, m := range ladder {
		out = append(out, domain.Milestone{
			Days:     m.days,
			Achieved: current >= m.days,
			Reward:   m.reward,
		})
	}
	return out, nil
}
