package engagement

import (
	"fmt"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/store"
)

// tierDef is one band of the reward ladder, highest first.
type tierDef struct {
	name      string
	threshold int
	benefits  []string
}

// rewardLadder is the fixed tier ladder, ordered by descending threshold.
var rewardLadder = []tierDef{
	{"Diamond", 10000, []string{"All Gold benefits", "1-on-1 mentor sessions", "Early access to new courses"}},
	{"Gold", 5000, []string{"All Silver benefits", "Exclusive workshops", "Priority support"}},
	{"Silver", 2500, []string{"All Bronze benefits", "Downloadable course materials", "Monthly challenges"}},
	{"Bronze", 1000, []string{"Custom profile flair", "Certificate downloads"}},
	{"Rookie", 0, []string{"Course access", "Community forum"}},
}

// interestTags is the fixed tag set reward suggestions match against.
var interestTags = map[string]string{
	"science":    "Hands-on science labs",
	"math":       "Competition math problem sets",
	"language":   "Conversation practice groups",
	"arts":       "Creative portfolio reviews",
	"technology": "Project-based coding tracks",
}

// TierCalculator maps point totals to named reward tiers.
type TierCalculator struct {
	store *store.Memory
}

// NewTierCalculator creates a reward tier calculator.
func NewTierCalculator(st *store.Memory) *TierCalculator {
	return &TierCalculator{store: st}
}

// RewardTier returns the tier band for the user's point total, with the
// exact gap to the next threshold (0 at Diamond).
func (c *TierCalculator) RewardTier(userID string) (domain.RewardTier, error) {
	if userID == "" {
		return domain.RewardTier{}, domain.ErrInvalidUserID
	}
	return TierForPoints(c.store.Get(userID).Points), nil
}

// TierForPoints maps a raw point total to its tier. Exposed for the
// leaderboard CLI and tests — tier boundaries are pure arithmetic.
func TierForPoints(points int) domain.RewardTier {
	for i, tier := range rewardLadder {
		if points < tier.threshold {
			continue
		}
		out := domain.RewardTier{
			Tier:     tier.name,
			Points:   points,
			Benefits: tier.benefits,
		}
		if i > 0 {
			next := rewardLadder[i-1]
			out.NextTier = next.name
			out.PointsToNext = next.threshold - points
			if out.PointsToNext < 0 {
				out.PointsToNext = 0
			}
		}
		return out
	}
	// Unreachable: the Rookie threshold is 0 and points are never negative.
	return domain.RewardTier{Tier: "Rookie", Points: points}
}

// GenerateRewards produces reward suggestions from the caller-supplied
// profile and the user's current streak. Pure recommendation — nothing
// is mutated or stored.
func (c *TierCalculator) GenerateRewards(userID string, profile domain.UserProfile) ([]domain.RewardSuggestion, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	state := c.store.Get(userID)
	suggestions := []domain.RewardSuggestion{}

	for _, interest := range profile.Interests {
		track, ok := interestTags[interest]
		if !ok {
			continue
		}
		suggestions = append(suggestions, domain.RewardSuggestion{
			Type:        "course",
			Title:       fmt.Sprintf("New %s content", interest),
			Description: track,
		})
	}

	if state.Streak.Current >= 7 {
		suggestions = append(suggestions, domain.RewardSuggestion{
			Type:        "bonus",
			Title:       "Streak bonus",
			Description: fmt.Sprintf("Claim bonus points for your %d-day streak", state.Streak.Current),
			Points:      streakBonus(state.Streak.Current),
		})
	}

	return suggestions, nil
}
