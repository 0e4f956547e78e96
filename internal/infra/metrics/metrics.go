// Package metrics provides Prometheus metrics for Motiva.
// Counters and gauges for activity scoring, point awards, achievement
// unlocks, badge evaluations, and leaderboard builds.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Points ─────────────────────────────────────────────────────────────────

// ActivitiesScored tracks activities run through the points calculator.
var ActivitiesScored = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "motiva",
	Name:      "activities_scored_total",
	Help:      "Total activities scored, by difficulty.",
}, []string{"difficulty"})

// PointsAwarded tracks total points credited to users.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "motiva",
	Name:      "points_awarded_total",
	Help:      "Total points added to user ledgers.",
})

// ─── Achievements / Badges ──────────────────────────────────────────────────

// AchievementsUnlocked tracks unlocks by achievement id.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "motiva",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievement unlocks.",
}, []string{"achievement"})

// BadgeEvaluations tracks badge catalog evaluations.
var BadgeEvaluations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "motiva",
	Name:      "badge_evaluations_total",
	Help:      "Total badge catalog evaluations.",
})

// ─── Leaderboard / Users ────────────────────────────────────────────────────

// LeaderboardBuilds tracks on-demand leaderboard snapshots.
var LeaderboardBuilds = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "motiva",
	Name:      "leaderboard_builds_total",
	Help:      "Total leaderboard builds.",
})

// UsersTracked tracks the number of users with gamification state.
var UsersTracked = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "motiva",
	Name:      "users_tracked",
	Help:      "Number of users with in-memory gamification state.",
})
