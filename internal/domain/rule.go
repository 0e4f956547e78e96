package domain

// RuleKind names a threshold check over UserState.
// Rules are plain data — a single interpreter evaluates them — so the
// achievement and badge catalogs stay serializable and testable without
// embedding closures.
type RuleKind string

const (
	RulePointsAtLeast  RuleKind = "points_at_least"
	RuleStreakAtLeast  RuleKind = "streak_at_least"
	RuleCoursesAtLeast RuleKind = "courses_at_least"
)

// Rule is a tagged threshold condition over a user's state.
type Rule struct {
	Kind  RuleKind `json:"kind"`
	Value int      `json:"value"`
}

// Matches evaluates the rule against a state snapshot.
// Unknown kinds never match.
func (r Rule) Matches(s UserState) bool {
	switch r.Kind {
	case RulePointsAtLeast:
		return s.Points >= r.Value
	case RuleStreakAtLeast:
		return s.Streak.Current >= r.Value
	case RuleCoursesAtLeast:
		return s.CoursesCompleted >= r.Value
	default:
		return false
	}
}

// Progress returns (current, target) for the rule's metric.
func (r Rule) Progress(s UserState) (int, int) {
	switch r.Kind {
	case RulePointsAtLeast:
		return s.Points, r.Value
	case RuleStreakAtLeast:
		return s.Streak.Current, r.Value
	case RuleCoursesAtLeast:
		return s.CoursesCompleted, r.Value
	default:
		return 0, 0
	}
}
