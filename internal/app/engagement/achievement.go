package engagement

import (
	"math"
	"time"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/infra/metrics"
	"github.com/motiva-learn/motiva/internal/store"
)

// AchievementEngine evaluates the fixed achievement catalog against user
// state. Unlocks are sticky and happen exactly once: an id already in the
// user's unlock set is never re-evaluated or re-returned.
type AchievementEngine struct {
	store       *store.Memory
	definitions []domain.AchievementDef
	feed        *Feed // nil disables feed recording
}

// NewAchievementEngine creates an achievement engine over the full catalog.
func NewAchievementEngine(st *store.Memory, feed *Feed) *AchievementEngine {
	return &AchievementEngine{
		store:       st,
		definitions: AchievementCatalog(),
		feed:        feed,
	}
}

// AchievementCatalog returns the static achievement definitions.
// Thresholds are encoded as data rules, not closures, so the catalog is
// serializable and testable in isolation.
func AchievementCatalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			ID: "first_milestone", Name: "First Milestone",
			Description: "Earn your first 1,000 points", Icon: "🎯",
			PointsThreshold: 1000,
			Rule:            domain.Rule{Kind: domain.RulePointsAtLeast, Value: 1000},
		},
		{
			ID: "point_master", Name: "Point Master",
			Description: "Reach 5,000 lifetime points", Icon: "💎",
			PointsThreshold: 5000,
			Rule:            domain.Rule{Kind: domain.RulePointsAtLeast, Value: 5000},
		},
		{
			ID: "streak_3", Name: "Warming Up",
			Description: "Learn 3 days in a row", Icon: "🔥",
			Rule: domain.Rule{Kind: domain.RuleStreakAtLeast, Value: 3},
		},
		{
			ID: "streak_7", Name: "Week Warrior",
			Description: "Learn 7 days in a row", Icon: "⚡",
			Rule: domain.Rule{Kind: domain.RuleStreakAtLeast, Value: 7},
		},
		{
			ID: "course_champion", Name: "Course Champion",
			Description: "Complete 10 courses", Icon: "🏆",
			Rule: domain.Rule{Kind: domain.RuleCoursesAtLeast, Value: 10},
		},
	}
}

// CheckAndUnlock evaluates every not-yet-unlocked definition and returns
// the newly unlocked achievements. Idempotent: a second call with no
// intervening state change returns an empty list.
func (a *AchievementEngine) CheckAndUnlock(userID string) ([]domain.UnlockedAchievement, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	return a.checkUser(userID), nil
}

// checkUser runs the unlock pass for a validated user id.
// Evaluation and unlock happen inside one store update, so two logically
// concurrent checks cannot double-unlock the same achievement.
func (a *AchievementEngine) checkUser(userID string) []domain.UnlockedAchievement {
	var newly []domain.UnlockedAchievement

	a.store.Update(userID, func(s *domain.UserState) {
		for _, def := range a.definitions {
			if _, unlocked := s.Achievements[def.ID]; unlocked {
				continue
			}
			if !def.Rule.Matches(*s) {
				continue
			}

			now := time.Now()
			s.Achievements[def.ID] = now
			newly = append(newly, domain.UnlockedAchievement{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				Icon:        def.Icon,
				UnlockedAt:  now,
			})
		}
	})

	for _, u := range newly {
		metrics.AchievementsUnlocked.WithLabelValues(u.ID).Inc()
		if a.feed != nil {
			a.feed.RecordAchievement(userID, u)
		}
	}
	return newly
}

// UserAchievements returns the unlocked achievement ids. Order is not
// significant.
func (a *AchievementEngine) UserAchievements(userID string) ([]string, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	state := a.store.Get(userID)
	ids := make([]string, 0, len(state.Achievements))
	for id := range state.Achievements {
		ids = append(ids, id)
	}
	return ids, nil
}

// Progress reports how close the user is to a known achievement.
// Unknown ids yield nil — "not a tracked metric", not an error.
func (a *AchievementEngine) Progress(userID, achievementID string) (*domain.Progress, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	for _, def := range a.definitions {
		if def.ID != achievementID {
			continue
		}
		state := a.store.Get(userID)
		return ruleProgress(def.Rule, state, def.Description), nil
	}
	return nil, nil
}

// Definitions returns the full catalog (for display).
func (a *AchievementEngine) Definitions() []domain.AchievementDef {
	return a.definitions
}

// ruleProgress builds a Progress record from a rule evaluation.
func ruleProgress(rule domain.Rule, state domain.UserState, description string) *domain.Progress {
	current, target := rule.Progress(state)
	pct := 100.0
	if target > 0 {
		pct = math.Min(float64(current)/float64(target)*100, 100)
	}
	return &domain.Progress{
		Current:     current,
		Target:      target,
		Percentage:  int(math.Round(pct)),
		Description: description,
	}
}
