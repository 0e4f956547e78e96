package engagement_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/motiva-learn/motiva/internal/app/engagement"
	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/store"
)

// env wires a fresh engine over an empty in-memory store.
type env struct {
	store        *store.Memory
	feed         *engagement.Feed
	ledger       *engagement.Ledger
	streaks      *engagement.Tracker
	achievements *engagement.AchievementEngine
	badges       *engagement.BadgeEngine
	leaderboard  *engagement.LeaderboardBuilder
	tiers        *engagement.TierCalculator
	scorer       *engagement.Scorer
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := store.NewMemory()
	feed := engagement.NewFeed()
	achievements := engagement.NewAchievementEngine(st, feed)
	badges := engagement.NewBadgeEngine(st)
	leaderboard := engagement.NewLeaderboardBuilder(st, badges)

	return &env{
		store:        st,
		feed:         feed,
		achievements: achievements,
		badges:       badges,
		leaderboard:  leaderboard,
		ledger:       engagement.NewLedger(st, achievements, feed),
		streaks:      engagement.NewTracker(st),
		tiers:        engagement.NewTierCalculator(st),
		scorer:       engagement.NewScorer(st, badges, leaderboard),
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Points
// ═══════════════════════════════════════════════════════════════════════════

func TestCalculatePoints_Scoring(t *testing.T) {
	tests := []struct {
		name     string
		activity domain.Activity
		want     int
	}{
		{"medium with bonus", domain.Activity{Difficulty: domain.DifficultyMedium, DurationMin: 120, Bonus: 0.1}, 132},
		{"hard with bonus", domain.Activity{Difficulty: domain.DifficultyHard, DurationMin: 60, Bonus: 0.5}, 135},
		{"easy no bonus", domain.Activity{Difficulty: domain.DifficultyEasy, DurationMin: 60}, 30},
		{"expert", domain.Activity{Difficulty: domain.DifficultyExpert, DurationMin: 30, Bonus: 0.25}, 75},
		{"empty difficulty defaults to medium", domain.Activity{DurationMin: 45}, 45},
		{"unknown difficulty defaults to medium", domain.Activity{Difficulty: "nightmare", DurationMin: 45}, 45},
		{"zero duration", domain.Activity{Difficulty: domain.DifficultyHard}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engagement.CalculatePoints(&tt.activity)
			if err != nil {
				t.Fatalf("CalculatePoints: %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculatePoints = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculatePoints_Deterministic(t *testing.T) {
	activity := domain.Activity{Difficulty: domain.DifficultyHard, DurationMin: 42, Bonus: 0.3}

	first, _ := engagement.CalculatePoints(&activity)
	second, _ := engagement.CalculatePoints(&activity)
	if first != second {
		t.Errorf("same input scored differently: %d vs %d", first, second)
	}
}

func TestCalculatePoints_NilActivity(t *testing.T) {
	_, err := engagement.CalculatePoints(nil)
	if !errors.Is(err, domain.ErrInvalidActivity) {
		t.Errorf("err = %v, want ErrInvalidActivity", err)
	}
}

func TestAddPoints_Monotonic(t *testing.T) {
	e := newEnv(t)

	total, err := e.ledger.AddPoints("u1", 100)
	if err != nil {
		t.Fatalf("AddPoints: %v", err)
	}
	if total != 100 {
		t.Errorf("total = %d, want 100", total)
	}

	total, _ = e.ledger.AddPoints("u1", 0)
	if total != 100 {
		t.Errorf("adding 0 changed total to %d", total)
	}

	total, _ = e.ledger.AddPoints("u1", 250)
	if total != 350 {
		t.Errorf("total = %d, want 350", total)
	}

	points, _ := e.ledger.UserPoints("u1")
	if points != 350 {
		t.Errorf("UserPoints = %d, want 350", points)
	}
}

func TestAddPoints_InvalidInput(t *testing.T) {
	e := newEnv(t)

	if _, err := e.ledger.AddPoints("", 10); !errors.Is(err, domain.ErrInvalidUserID) {
		t.Errorf("empty user: err = %v, want ErrInvalidUserID", err)
	}
	if _, err := e.ledger.AddPoints("u1", -5); !errors.Is(err, domain.ErrInvalidPoints) {
		t.Errorf("negative points: err = %v, want ErrInvalidPoints", err)
	}

	// Validation happens before any write — the failed call must not
	// have touched the total.
	points, _ := e.ledger.UserPoints("u1")
	if points != 0 {
		t.Errorf("points after rejected calls = %d, want 0", points)
	}
}

func TestUserPoints_NewUserIsZero(t *testing.T) {
	e := newEnv(t)

	points, err := e.ledger.UserPoints("fresh")
	if err != nil {
		t.Fatalf("UserPoints: %v", err)
	}
	if points != 0 {
		t.Errorf("points = %d, want 0", points)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streaks
// ═══════════════════════════════════════════════════════════════════════════

func TestUpdateStreak_SetsCurrentAndLongest(t *testing.T) {
	e := newEnv(t)

	streak, err := e.streaks.UpdateStreak("u1", 5)
	if err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if streak.Current != 5 || streak.Longest != 5 {
		t.Errorf("streak = %+v, want current 5 longest 5", streak)
	}

	// Lower value: current drops, longest stays.
	streak, _ = e.streaks.UpdateStreak("u1", 2)
	if streak.Current != 2 {
		t.Errorf("current = %d, want 2", streak.Current)
	}
	if streak.Longest != 5 {
		t.Errorf("longest = %d, want 5", streak.Longest)
	}
}

func TestResetStreak_PreservesLongest(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 9)
	streak, err := e.streaks.ResetStreak("u1")
	if err != nil {
		t.Fatalf("ResetStreak: %v", err)
	}
	if streak.Current != 0 {
		t.Errorf("current = %d, want 0", streak.Current)
	}
	if streak.Longest != 9 {
		t.Errorf("longest = %d, want 9", streak.Longest)
	}
}

func TestUpdateStreak_InvalidInput(t *testing.T) {
	e := newEnv(t)

	if _, err := e.streaks.UpdateStreak("", 3); !errors.Is(err, domain.ErrInvalidUserID) {
		t.Errorf("empty user: err = %v, want ErrInvalidUserID", err)
	}
	if _, err := e.streaks.UpdateStreak("u1", -1); !errors.Is(err, domain.ErrInvalidStreak) {
		t.Errorf("negative days: err = %v, want ErrInvalidStreak", err)
	}
}

func TestStreakBonus_SevenDaysIsFifty(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 7)
	bonus, err := e.streaks.StreakBonus("u1")
	if err != nil {
		t.Fatalf("StreakBonus: %v", err)
	}
	if bonus != 50 {
		t.Errorf("bonus = %d, want 50", bonus)
	}
}

func TestMilestones_AchievedFlags(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 14)
	milestones, err := e.streaks.Milestones("u1")
	if err != nil {
		t.Fatalf("Milestones: %v", err)
	}

	wantDays := []int{3, 7, 14, 30, 100}
	if len(milestones) != len(wantDays) {
		t.Fatalf("got %d milestones, want %d", len(milestones), len(wantDays))
	}
	for i, m := range milestones {
		if m.Days != wantDays[i] {
			t.Errorf("milestone %d days = %d, want %d", i, m.Days, wantDays[i])
		}
		wantAchieved := wantDays[i] <= 14
		if m.Achieved != wantAchieved {
			t.Errorf("milestone %d achieved = %v, want %v", m.Days, m.Achieved, wantAchieved)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievements
// ═══════════════════════════════════════════════════════════════════════════

func TestCheckAndUnlock_Idempotent(t *testing.T) {
	e := newEnv(t)

	// UpdateStreak does not auto-check, so the first explicit check
	// should unlock streak_3 and the second should return nothing.
	_, _ = e.streaks.UpdateStreak("u1", 3)

	first, err := e.achievements.CheckAndUnlock("u1")
	if err != nil {
		t.Fatalf("CheckAndUnlock: %v", err)
	}
	if len(first) != 1 || first[0].ID != "streak_3" {
		t.Fatalf("first check = %+v, want exactly streak_3", first)
	}
	if first[0].UnlockedAt.IsZero() {
		t.Error("UnlockedAt not stamped")
	}

	second, _ := e.achievements.CheckAndUnlock("u1")
	if len(second) != 0 {
		t.Errorf("second check returned %+v, want empty", second)
	}
}

func TestAddPoints_UnlocksFirstMilestone(t *testing.T) {
	e := newEnv(t)

	_, _ = e.ledger.AddPoints("u1", 999)
	ids, _ := e.achievements.UserAchievements("u1")
	if len(ids) != 0 {
		t.Fatalf("achievements below threshold = %v, want none", ids)
	}

	_, _ = e.ledger.AddPoints("u1", 1)
	ids, _ = e.achievements.UserAchievements("u1")
	if len(ids) != 1 || ids[0] != "first_milestone" {
		t.Fatalf("achievements = %v, want exactly first_milestone", ids)
	}

	// The sticky set survives further mutations.
	_, _ = e.ledger.AddPoints("u1", 10)
	ids, _ = e.achievements.UserAchievements("u1")
	found := false
	for _, id := range ids {
		if id == "first_milestone" {
			found = true
		}
	}
	if !found {
		t.Errorf("first_milestone missing after later update: %v", ids)
	}
}

func TestCheckAndUnlock_CoursesAchievement(t *testing.T) {
	e := newEnv(t)

	// Courses are only fed through the explicit setter.
	if err := e.ledger.SetCoursesCompleted("u1", 10); err != nil {
		t.Fatalf("SetCoursesCompleted: %v", err)
	}

	ids, _ := e.achievements.UserAchievements("u1")
	if len(ids) != 1 || ids[0] != "course_champion" {
		t.Errorf("achievements = %v, want exactly course_champion", ids)
	}
}

func TestSetCoursesCompleted_NegativeRejected(t *testing.T) {
	e := newEnv(t)

	if err := e.ledger.SetCoursesCompleted("u1", -1); !errors.Is(err, domain.ErrInvalidCourses) {
		t.Errorf("err = %v, want ErrInvalidCourses", err)
	}
}

func TestAchievementProgress(t *testing.T) {
	e := newEnv(t)
	_, _ = e.ledger.AddPoints("u1", 500)

	progress, err := e.achievements.Progress("u1", "first_milestone")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress == nil {
		t.Fatal("progress = nil for known achievement")
	}
	if progress.Current != 500 || progress.Target != 1000 || progress.Percentage != 50 {
		t.Errorf("progress = %+v, want 500/1000 (50%%)", progress)
	}
}

func TestAchievementProgress_CapsAtHundred(t *testing.T) {
	e := newEnv(t)
	_, _ = e.ledger.AddPoints("u1", 3000)

	progress, _ := e.achievements.Progress("u1", "first_milestone")
	if progress.Percentage != 100 {
		t.Errorf("percentage = %d, want capped at 100", progress.Percentage)
	}
}

func TestAchievementProgress_UnknownIDIsNoData(t *testing.T) {
	e := newEnv(t)

	progress, err := e.achievements.Progress("u1", "does_not_exist")
	if err != nil {
		t.Fatalf("unknown id must not be an error, got %v", err)
	}
	if progress != nil {
		t.Errorf("progress = %+v, want nil", progress)
	}
}

func TestFeed_RecordsUnlocks(t *testing.T) {
	e := newEnv(t)

	_, _ = e.ledger.AddPoints("u1", 1500)

	events := e.feed.Pending("u1")
	if len(events) == 0 {
		t.Fatal("no feed events after crossing 1000 points")
	}

	sawAchievement := false
	for _, ev := range events {
		if ev.Type == domain.FeedAchievement {
			sawAchievement = true
		}
		if ev.ID == "" {
			t.Error("feed event missing id")
		}
	}
	if !sawAchievement {
		t.Errorf("events = %+v, want an achievement entry", events)
	}

	if !e.feed.MarkSeen("u1", events[0].ID) {
		t.Fatal("MarkSeen returned false for known event")
	}
	if len(e.feed.Pending("u1")) != len(events)-1 {
		t.Error("seen event still pending")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badges
// ═══════════════════════════════════════════════════════════════════════════

func TestUserBadges_NewUserHasNone(t *testing.T) {
	e := newEnv(t)

	badges, err := e.badges.UserBadges("fresh")
	if err != nil {
		t.Fatalf("UserBadges: %v", err)
	}
	if len(badges) != 0 {
		t.Errorf("badges = %+v, want empty", badges)
	}
}

func TestUserBadges_CurrentStatusNotSticky(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 7)
	badges, _ := e.badges.UserBadges("u1")
	if len(badges) != 1 || badges[0].ID != "streak_star" {
		t.Fatalf("badges = %+v, want exactly streak_star", badges)
	}
	if badges[0].EarnedAt.IsZero() {
		t.Error("EarnedAt not stamped")
	}

	// Badges are recomputed each call: losing the streak loses the badge.
	_, _ = e.streaks.ResetStreak("u1")
	badges, _ = e.badges.UserBadges("u1")
	if len(badges) != 0 {
		t.Errorf("badges after reset = %+v, want empty", badges)
	}
}

func TestBadgeProgress(t *testing.T) {
	e := newEnv(t)
	_, _ = e.ledger.AddPoints("u1", 500)

	progress, err := e.badges.Progress("u1", "point_collector")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress.Current != 500 || progress.Target != 2000 || progress.Percentage != 25 {
		t.Errorf("progress = %+v, want 500/2000 (25%%)", progress)
	}

	unknown, err := e.badges.Progress("u1", "nope")
	if err != nil || unknown != nil {
		t.Errorf("unknown badge: progress = %+v err = %v, want nil/nil", unknown, err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Leaderboard
// ═══════════════════════════════════════════════════════════════════════════

func TestLeaderboard_OrderingAndRankBadges(t *testing.T) {
	e := newEnv(t)

	// 12 users with distinct, shuffled totals.
	for i, points := range []int{400, 1200, 900, 5000, 50, 3000, 700, 2500, 150, 8000, 600, 75} {
		_, _ = e.ledger.AddPoints(fmt.Sprintf("u%02d", i), points)
	}

	board := e.leaderboard.Leaderboard("all_time")
	if board.Period != "all_time" {
		t.Errorf("period = %q, want all_time", board.Period)
	}
	if len(board.Users) != 12 {
		t.Fatalf("len = %d, want 12", len(board.Users))
	}

	for i, entry := range board.Users {
		if entry.Rank != i+1 {
			t.Errorf("rank at index %d = %d, want %d", i, entry.Rank, i+1)
		}
		if i > 0 && entry.Points > board.Users[i-1].Points {
			t.Errorf("not sorted descending at index %d", i)
		}
	}

	if board.Users[0].RankBadge != domain.RankBadgeGold {
		t.Errorf("rank 1 badge = %q, want gold", board.Users[0].RankBadge)
	}
	for _, i := range []int{1, 2} {
		if board.Users[i].RankBadge != domain.RankBadgeSilver {
			t.Errorf("rank %d badge = %q, want silver", i+1, board.Users[i].RankBadge)
		}
	}
	for i := 3; i < 10; i++ {
		if board.Users[i].RankBadge != domain.RankBadgeBronze {
			t.Errorf("rank %d badge = %q, want bronze", i+1, board.Users[i].RankBadge)
		}
	}
	for i := 10; i < 12; i++ {
		if board.Users[i].RankBadge != domain.RankBadgeParticipant {
			t.Errorf("rank %d badge = %q, want participant", i+1, board.Users[i].RankBadge)
		}
	}
}

func TestLeaderboard_TiesKeepInsertionOrder(t *testing.T) {
	e := newEnv(t)

	_, _ = e.ledger.AddPoints("first", 100)
	_, _ = e.ledger.AddPoints("second", 100)
	_, _ = e.ledger.AddPoints("third", 100)

	board := e.leaderboard.Leaderboard("weekly")
	got := []string{board.Users[0].UserID, board.Users[1].UserID, board.Users[2].UserID}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order = %v, want %v", got, want)
		}
	}
}

func TestLeaderboard_TruncatesToTopHundred(t *testing.T) {
	e := newEnv(t)

	// 120 users with strictly decreasing points: u000 leads, u119 trails.
	for i := 0; i < 120; i++ {
		_, _ = e.ledger.AddPoints(fmt.Sprintf("u%03d", i), 20000-i*10)
	}

	board := e.leaderboard.Leaderboard("all_time")
	if len(board.Users) != 100 {
		t.Fatalf("len = %d, want board capped at 100", len(board.Users))
	}
	last := board.Users[99]
	if last.Rank != 100 || last.UserID != "u099" {
		t.Errorf("last entry = %s rank %d, want u099 rank 100", last.UserID, last.Rank)
	}

	// Users below the cut are unranked.
	if rank := e.leaderboard.Rank("u100"); rank != 0 {
		t.Errorf("Rank(u100) = %d, want 0 outside the top 100", rank)
	}
	if rank := e.leaderboard.Rank("u119"); rank != 0 {
		t.Errorf("Rank(u119) = %d, want 0 outside the top 100", rank)
	}
}

func TestLeaderboard_Rank(t *testing.T) {
	e := newEnv(t)

	_, _ = e.ledger.AddPoints("top", 500)
	_, _ = e.ledger.AddPoints("bottom", 5)

	if rank := e.leaderboard.Rank("top"); rank != 1 {
		t.Errorf("Rank(top) = %d, want 1", rank)
	}
	if rank := e.leaderboard.Rank("ghost"); rank != 0 {
		t.Errorf("Rank(ghost) = %d, want 0", rank)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Reward Tiers
// ═══════════════════════════════════════════════════════════════════════════

func TestTierForPoints_Boundaries(t *testing.T) {
	tests := []struct {
		points     int
		wantTier   string
		wantNext   string
		wantToNext int
	}{
		{0, "Rookie", "Bronze", 1000},
		{999, "Rookie", "Bronze", 1},
		{1000, "Bronze", "Silver", 1500},
		{2499, "Bronze", "Silver", 1},
		{2500, "Silver", "Gold", 2500},
		{5000, "Gold", "Diamond", 5000},
		{9999, "Gold", "Diamond", 1},
		{10000, "Diamond", "", 0},
		{25000, "Diamond", "", 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.points), func(t *testing.T) {
			tier := engagement.TierForPoints(tt.points)
			if tier.Tier != tt.wantTier {
				t.Errorf("tier = %q, want %q", tier.Tier, tt.wantTier)
			}
			if tier.NextTier != tt.wantNext {
				t.Errorf("next = %q, want %q", tier.NextTier, tt.wantNext)
			}
			if tier.PointsToNext != tt.wantToNext {
				t.Errorf("toNext = %d, want %d", tier.PointsToNext, tt.wantToNext)
			}
			if len(tier.Benefits) == 0 {
				t.Error("tier has no benefits")
			}
		})
	}
}

func TestRewardTier_ReadsUserState(t *testing.T) {
	e := newEnv(t)

	_, _ = e.ledger.AddPoints("u1", 2600)
	tier, err := e.tiers.RewardTier("u1")
	if err != nil {
		t.Fatalf("RewardTier: %v", err)
	}
	if tier.Tier != "Silver" {
		t.Errorf("tier = %q, want Silver", tier.Tier)
	}
}

func TestGenerateRewards(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 8)
	profile := domain.UserProfile{Interests: []string{"math", "underwater basket weaving", "science"}}

	rewards, err := e.tiers.GenerateRewards("u1", profile)
	if err != nil {
		t.Fatalf("GenerateRewards: %v", err)
	}

	courses, bonuses := 0, 0
	for _, r := range rewards {
		switch r.Type {
		case "course":
			courses++
		case "bonus":
			bonuses++
			if r.Points != 57 { // round(8 × 7.14)
				t.Errorf("bonus points = %d, want 57", r.Points)
			}
		}
	}
	if courses != 2 {
		t.Errorf("course suggestions = %d, want 2 (unknown interests skipped)", courses)
	}
	if bonuses != 1 {
		t.Errorf("bonus suggestions = %d, want 1 for streak >= 7", bonuses)
	}
}

func TestGenerateRewards_BonusMatchesStreakBonus(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 11)
	want, _ := e.streaks.StreakBonus("u1")

	rewards, _ := e.tiers.GenerateRewards("u1", domain.UserProfile{})
	if len(rewards) != 1 {
		t.Fatalf("rewards = %+v, want one bonus suggestion", rewards)
	}
	if rewards[0].Points != want {
		t.Errorf("suggestion points = %d, want %d (same formula as StreakBonus)", rewards[0].Points, want)
	}
}

func TestGenerateRewards_NoStreakNoBonus(t *testing.T) {
	e := newEnv(t)

	rewards, _ := e.tiers.GenerateRewards("u1", domain.UserProfile{})
	if len(rewards) != 0 {
		t.Errorf("rewards = %+v, want none", rewards)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Engagement Score / Metrics / Insights
// ═══════════════════════════════════════════════════════════════════════════

func TestEngagementScore_Caps(t *testing.T) {
	state := domain.NewUserState("u1")
	if got := engagement.EngagementScore(state); got != 0 {
		t.Errorf("zero state score = %d, want 0", got)
	}

	state.Points = 20000
	state.Streak.Current = 30
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		state.Achievements[id] = state.LastActivity
	}
	if got := engagement.EngagementScore(state); got != 100 {
		t.Errorf("maxed state score = %d, want 100", got)
	}

	// Partial: 600 points (6) + 2-day streak (10) + 1 achievement (10).
	partial := domain.NewUserState("u2")
	partial.Points = 600
	partial.Streak.Current = 2
	partial.Achievements["first"] = state.LastActivity
	if got := engagement.EngagementScore(partial); got != 26 {
		t.Errorf("partial score = %d, want 26", got)
	}
}

func TestMetrics_NewUserScenario(t *testing.T) {
	e := newEnv(t)

	m, err := e.scorer.Metrics("u1")
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m.TotalPoints != 0 || m.CurrentStreak != 0 || m.AchievementsUnlocked != 0 ||
		m.BadgesEarned != 0 || m.EngagementScore != 0 {
		t.Errorf("new user metrics = %+v, want all zero", m)
	}
}

func TestMetrics_Assembled(t *testing.T) {
	e := newEnv(t)

	_, _ = e.ledger.AddPoints("u1", 2100)
	_, _ = e.streaks.UpdateStreak("u1", 7)
	_, _ = e.achievements.CheckAndUnlock("u1")

	m, _ := e.scorer.Metrics("u1")
	if m.TotalPoints != 2100 {
		t.Errorf("TotalPoints = %d, want 2100", m.TotalPoints)
	}
	if m.CurrentStreak != 7 {
		t.Errorf("CurrentStreak = %d, want 7", m.CurrentStreak)
	}
	// first_milestone (via AddPoints), streak_3 and streak_7 (via check).
	if m.AchievementsUnlocked != 3 {
		t.Errorf("AchievementsUnlocked = %d, want 3", m.AchievementsUnlocked)
	}
	// streak_star (7-day) + point_collector (2000+).
	if m.BadgesEarned != 2 {
		t.Errorf("BadgesEarned = %d, want 2", m.BadgesEarned)
	}
	if m.LeaderboardRank != 1 {
		t.Errorf("LeaderboardRank = %d, want 1", m.LeaderboardRank)
	}
}

func TestInsights_MotivationLevels(t *testing.T) {
	e := newEnv(t)

	// high: 6000 points caps the point part and auto-unlocks both
	// point milestones; with a 6-day streak the score clears 80.
	_, _ = e.ledger.AddPoints("high", 6000)
	_, _ = e.streaks.UpdateStreak("high", 6)
	insights, err := e.scorer.Insights("high")
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if insights.MotivationLevel != domain.MotivationHigh {
		t.Errorf("level = %q (score %d), want high", insights.MotivationLevel, insights.EngagementScore)
	}

	// low: fresh user scores 0
	insights, _ = e.scorer.Insights("low")
	if insights.MotivationLevel != domain.MotivationLow {
		t.Errorf("level = %q, want low", insights.MotivationLevel)
	}
}

func TestInsights_RiskAndRecommendations(t *testing.T) {
	e := newEnv(t)

	_, _ = e.streaks.UpdateStreak("u1", 1)
	insights, _ := e.scorer.Insights("u1")

	if len(insights.RiskFactors) != 1 {
		t.Errorf("risk factors = %v, want the low-streak flag", insights.RiskFactors)
	}
	// Low streak and low points each add a recommendation.
	if len(insights.RecommendedActions) != 2 {
		t.Errorf("recommendations = %v, want 2", insights.RecommendedActions)
	}

	// A healthy user has neither.
	_, _ = e.ledger.AddPoints("u2", 3000)
	_, _ = e.streaks.UpdateStreak("u2", 10)
	insights, _ = e.scorer.Insights("u2")
	if len(insights.RiskFactors) != 0 || len(insights.RecommendedActions) != 0 {
		t.Errorf("healthy user insights = %+v, want no flags", insights)
	}
}

func TestInsights_DeepRankRecommendation(t *testing.T) {
	e := newEnv(t)

	// 60 users with strictly decreasing points; the last ranks 60th.
	for i := 0; i < 60; i++ {
		_, _ = e.ledger.AddPoints(fmt.Sprintf("u%02d", i), 6000-i*10)
	}

	insights, _ := e.scorer.Insights("u59")
	found := false
	for _, action := range insights.RecommendedActions {
		if action == "Join study groups to climb the leaderboard" {
			found = true
		}
	}
	if !found {
		t.Errorf("rank-51+ user missing study group recommendation: %v", insights.RecommendedActions)
	}
}
