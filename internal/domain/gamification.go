// Package domain holds the gamification engine's core types.
// The engine drives learner motivation through points, streaks,
// achievements, badges, reward tiers, and a cross-user leaderboard.
package domain

import "time"

// ─── Activity / Points Types ────────────────────────────────────────────────

// Difficulty grades an activity. Unknown values score as medium.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Multiplier returns the points multiplier for this difficulty.
// Empty or unrecognized difficulties fall back to medium (×1).
func (d Difficulty) Multiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 1.5
	case DifficultyExpert:
		return 2.0
	default:
		return 1.0
	}
}

// Activity is a single scored learning activity.
// DurationMin is the activity length in minutes; Bonus is a fractional
// multiplier applied on top of the base score (0.1 = +10%).
type Activity struct {
	Type        string     `json:"type"`
	Difficulty  Difficulty `json:"difficulty"`
	DurationMin float64    `json:"duration"`
	Bonus       float64    `json:"bonus"`
}

// ─── Streak Types ───────────────────────────────────────────────────────────

// Streak tracks consecutive days of learning activity.
// Current resets on inactivity; Longest is the historical maximum and
// never decreases.
type Streak struct {
	Current      int       `json:"current"`
	Longest      int       `json:"longest"`
	LastActivity time.Time `json:"last_activity"`
}

// Milestone is a fixed streak target with its reward label.
type Milestone struct {
	Days     int    `json:"days"`
	Achieved bool   `json:"achieved"`
	Reward   string `json:"reward"`
}

// ─── User State ─────────────────────────────────────────────────────────────

// UserState is one learner's gamification record.
// Points only ever grow; Achievements is a monotonic unlock set keyed by
// achievement id, valued by unlock time. CoursesCompleted is fed by an
// explicit setter — nothing else in the engine writes it.
type UserState struct {
	UserID           string               `json:"user_id"`
	Points           int                  `json:"points"`
	Streak           Streak               `json:"streak"`
	Achievements     map[string]time.Time `json:"achievements"`
	CoursesCompleted int                  `json:"courses_completed"`
	LastActivity     time.Time            `json:"last_activity"`
}

// NewUserState returns a zero-valued record for a first-touch user.
func NewUserState(userID string) UserState {
	return UserState{
		UserID:       userID,
		Achievements: make(map[string]time.Time),
	}
}

// Clone returns a deep copy so callers can't mutate stored state.
func (s UserState) Clone() UserState {
	cp := s
	cp.Achievements = make(map[string]time.Time, len(s.Achievements))
	for id, at := range s.Achievements {
		cp.Achievements[id] = at
	}
	return cp
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementDef defines a single sticky, unlock-once achievement.
// PointsThreshold is informational (shown in the UI); the Rule decides.
type AchievementDef struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	PointsThreshold int    `json:"points_threshold"`
	Rule            Rule   `json:"rule"`
}

// UnlockedAchievement records a newly unlocked achievement.
type UnlockedAchievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeDef defines a badge. Badges are point-in-time status: each query
// re-evaluates the rule, nothing is persisted.
type BadgeDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Rule        Rule   `json:"rule"`
}

// EarnedBadge is a badge the user qualifies for right now.
// EarnedAt is the evaluation time, not a first-earned timestamp.
type EarnedBadge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

// ─── Progress ───────────────────────────────────────────────────────────────

// Progress reports how far a user is toward an achievement or badge.
type Progress struct {
	Current     int    `json:"current"`
	Target      int    `json:"target"`
	Percentage  int    `json:"percentage"`
	Description string `json:"description"`
}

// ─── Leaderboard Types ──────────────────────────────────────────────────────

// LeaderboardEntry is one ranked row, derived fresh at build time.
type LeaderboardEntry struct {
	UserID       string `json:"user_id"`
	Points       int    `json:"points"`
	Streak       int    `json:"streak"`
	Achievements int    `json:"achievements"`
	Badges       int    `json:"badges"`
	Rank         int    `json:"rank"`
	RankBadge    string `json:"rank_badge"`
}

// Leaderboard is a ranked snapshot across all known users.
// Period is an opaque label; every build ranks all-time totals.
type Leaderboard struct {
	Period      string             `json:"period"`
	Users       []LeaderboardEntry `json:"users"`
	LastUpdated time.Time          `json:"last_updated"`
}

// Rank badge labels by position.
const (
	RankBadgeGold        = "gold"
	RankBadgeSilver      = "silver"
	RankBadgeBronze      = "bronze"
	RankBadgeParticipant = "participant"
)

// ─── Reward Tier Types ──────────────────────────────────────────────────────

// RewardTier is the named band a user's point total falls into.
type RewardTier struct {
	Tier         string   `json:"tier"`
	Points       int      `json:"points"`
	Benefits     []string `json:"benefits"`
	NextTier     string   `json:"next_tier,omitempty"`
	PointsToNext int      `json:"points_to_next"`
}

// UserProfile carries the caller-supplied interests used by reward
// suggestion generation. The engine never stores profiles.
type UserProfile struct {
	Interests []string `json:"interests"`
}

// RewardSuggestion is a generated recommendation — no mutation involved.
type RewardSuggestion struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points,omitempty"`
}

// ─── Engagement / Insights Types ────────────────────────────────────────────

// Metrics is the assembled per-user gamification summary.
type Metrics struct {
	TotalPoints          int `json:"total_points"`
	CurrentStreak        int `json:"current_streak"`
	AchievementsUnlocked int `json:"achievements_unlocked"`
	BadgesEarned         int `json:"badges_earned"`
	LeaderboardRank      int `json:"leaderboard_rank"`
	EngagementScore      int `json:"engagement_score"`
}

// MotivationLevel classifies the engagement score.
type MotivationLevel string

const (
	MotivationHigh   MotivationLevel = "high"
	MotivationMedium MotivationLevel = "medium"
	MotivationLow    MotivationLevel = "low"
)

// Insights turns a user's state into qualitative signals for the UI.
type Insights struct {
	EngagementScore    int             `json:"engagement_score"`
	MotivationLevel    MotivationLevel `json:"motivation_level"`
	RecommendedActions []string        `json:"recommended_actions"`
	RiskFactors        []string        `json:"risk_factors"`
}

// ─── Feed Types ─────────────────────────────────────────────────────────────

// FeedEventType categorizes unlock feed entries.
type FeedEventType string

const (
	FeedAchievement   FeedEventType = "achievement"
	FeedTierPromotion FeedEventType = "tier_promotion"
)

// FeedEvent is a pull-based record of something worth celebrating.
// The UI polls and marks events seen; nothing is pushed.
type FeedEvent struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Type      FeedEventType `json:"type"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"created_at"`
	Seen      bool          `json:"seen"`
}
