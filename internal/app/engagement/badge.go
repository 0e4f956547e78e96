package engagement

import (
	"time"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/infra/metrics"
	"github.com/motiva-learn/motiva/internal/store"
)

// BadgeEngine evaluates the badge catalog against current state.
// Badges are point-in-time status, not a historical ledger: every call
// re-evaluates all rules and stamps EarnedAt with the evaluation time.
// Nothing is persisted between calls.
type BadgeEngine struct {
	store       *store.Memory
	definitions []domain.BadgeDef
}

// NewBadgeEngine creates a badge engine over the full catalog.
func NewBadgeEngine(st *store.Memory) *BadgeEngine {
	return &BadgeEngine{store: st, definitions: BadgeCatalog()}
}

// BadgeCatalog returns the static badge definitions.
func BadgeCatalog() []domain.BadgeDef {
	return []domain.BadgeDef{
		{
			ID: "streak_star", Name: "Streak Star",
			Description: "Holding a 7-day learning streak", Icon: "🌟",
			Rule: domain.Rule{Kind: domain.RuleStreakAtLeast, Value: 7},
		},
		{
			ID: "point_collector", Name: "Point Collector",
			Description: "Sitting on 2,000+ points", Icon: "💰",
			Rule: domain.Rule{Kind: domain.RulePointsAtLeast, Value: 2000},
		},
		{
			ID: "course_expert", Name: "Course Expert",
			Description: "10 courses under the belt", Icon: "🎓",
			Rule: domain.Rule{Kind: domain.RuleCoursesAtLeast, Value: 10},
		},
	}
}

// UserBadges returns the badges the user currently qualifies for.
func (b *BadgeEngine) UserBadges(userID string) ([]domain.EarnedBadge, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	state := b.store.Get(userID)
	metrics.BadgeEvaluations.Inc()

	badges := []domain.EarnedBadge{}
	now := time.Now()
	for _, def := range b.definitions {
		if !def.Rule.Matches(state) {
			continue
		}
		badges = append(badges, domain.EarnedBadge{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			EarnedAt:    now,
		})
	}
	return badges, nil
}

// Progress reports how close the user is to a known badge.
// Unknown ids yield nil, not an error.
func (b *BadgeEngine) Progress(userID, badgeID string) (*domain.Progress, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	for _, def := range b.definitions {
		if def.ID != badgeID {
			continue
		}
		state := b.store.Get(userID)
		return ruleProgress(def.Rule, state, def.Description), nil
	}
	return nil, nil
}

// countFor returns how many badges a given state qualifies for, without
// building the earned records. Used by the leaderboard and metrics.
func (b *BadgeEngine) countFor(state domain.UserState) int {
	n := 0
	for _, def := range b.definitions {
		if def.Rule.Matches(state) {
			n++
		}
	}
	return n
}
