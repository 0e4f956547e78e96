package engagement

import (
	"sort"
	"time"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/infra/metrics"
	"github.com/motiva-learn/motiva/internal/store"
)

// leaderboardSize caps the ranked view at the top 100 users.
const leaderboardSize = 100

// LeaderboardBuilder produces ranked views across all known users.
// Builds are pull-based and uncached: every call snapshots the store.
type LeaderboardBuilder struct {
	store  *store.Memory
	badges *BadgeEngine
}

// NewLeaderboardBuilder creates a leaderboard builder.
func NewLeaderboardBuilder(st *store.Memory, badges *BadgeEngine) *LeaderboardBuilder {
	return &LeaderboardBuilder{store: st, badges: badges}
}

// Leaderboard ranks every known user descending by points, keeping store
// insertion order on ties, truncated to the top 100. The period is an
// opaque label on the result — all rankings are all-time.
func (b *LeaderboardBuilder) Leaderboard(period string) domain.Leaderboard {
	states := b.store.Snapshot()

	entries := make([]domain.LeaderboardEntry, 0, len(states))
	for _, s := range states {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:       s.UserID,
			Points:       s.Points,
			Streak:       s.Streak.Current,
			Achievements: len(s.Achievements),
			Badges:       b.badges.countFor(s),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].RankBadge = rankBadge(i + 1)
	}

	metrics.LeaderboardBuilds.Inc()
	return domain.Leaderboard{
		Period:      period,
		Users:       entries,
		LastUpdated: time.Now(),
	}
}

// Rank returns the user's position on the all-time board, or 0 if the
// user is outside the top 100.
func (b *LeaderboardBuilder) Rank(userID string) int {
	for _, entry := range b.Leaderboard("all_time").Users {
		if entry.UserID == userID {
			return entry.Rank
		}
	}
	return 0
}

// rankBadge maps a 1-based rank to its badge label.
func rankBadge(rank int) string {
	switch {
	case rank == 1:
		return domain.RankBadgeGold
	case rank <= 3:
		return domain.RankBadgeSilver
	case rank <= 10:
		return domain.RankBadgeBronze
	default:
		return domain.RankBadgeParticipant
	}
}
