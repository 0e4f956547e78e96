package engagement

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/motiva-learn/motiva/internal/domain"
)

// FeedPolicy governs how many celebration events a user accumulates.
// Entries beyond MaxPerUser evict oldest-first; MaxPerDay caps how many
// tier promotions are recorded per user per day (achievement unlocks are
// never suppressed — they happen once).
type FeedPolicy struct {
	MaxPerUser int
	MaxPerDay  int
}

// DefaultFeedPolicy keeps the feed small: the UI polls and drains it.
func DefaultFeedPolicy() FeedPolicy {
	return FeedPolicy{MaxPerUser: 50, MaxPerDay: 3}
}

// Feed is a pull-based, in-memory record of unlock and promotion events.
// Nothing is pushed to the user; the presentation layer polls Pending
// and marks events seen.
type Feed struct {
	mu     sync.Mutex
	policy FeedPolicy
	events map[string][]domain.FeedEvent
}

// NewFeed creates a feed with the default policy.
func NewFeed() *Feed {
	return NewFeedWithPolicy(DefaultFeedPolicy())
}

// NewFeedWithPolicy creates a feed with a custom policy.
func NewFeedWithPolicy(policy FeedPolicy) *Feed {
	return &Feed{policy: policy, events: make(map[string][]domain.FeedEvent)}
}

// RecordAchievement appends an achievement unlock event.
func (f *Feed) RecordAchievement(userID string, u domain.UnlockedAchievement) {
	f.record(domain.FeedEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.FeedAchievement,
		Title:     fmt.Sprintf("Achievement unlocked: %s", u.Name),
		Body:      u.Description,
		CreatedAt: u.UnlockedAt,
	})
}

// RecordTierPromotion appends a tier promotion event, subject to the
// per-day cap.
func (f *Feed) RecordTierPromotion(userID, tier string) {
	now := time.Now()

	f.mu.Lock()
	promosToday := 0
	for _, ev := range f.events[userID] {
		if ev.Type == domain.FeedTierPromotion && sameDay(ev.CreatedAt, now) {
			promosToday++
		}
	}
	capped := promosToday >= f.policy.MaxPerDay
	f.mu.Unlock()

	if capped {
		return
	}
	f.record(domain.FeedEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      domain.FeedTierPromotion,
		Title:     fmt.Sprintf("Promoted to %s", tier),
		Body:      fmt.Sprintf("You reached the %s reward tier", tier),
		CreatedAt: now,
	})
}

// Pending returns the user's unseen events, oldest first.
func (f *Feed) Pending(userID string) []domain.FeedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.FeedEvent{}
	for _, ev := range f.events[userID] {
		if !ev.Seen {
			out = append(out, ev)
		}
	}
	return out
}

// MarkSeen flags an event as seen. Returns false if the id is unknown
// for that user.
func (f *Feed) MarkSeen(userID, eventID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	evs := f.events[userID]
	for i := range evs {
		if evs[i].ID == eventID {
			evs[i].Seen = true
			return true
		}
	}
	return false
}

// record appends an event, evicting oldest entries past the cap.
func (f *Feed) record(ev domain.FeedEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	evs := append(f.events[ev.UserID], ev)
	if len(evs) > f.policy.MaxPerUser {
		evs = evs[len(evs)-f.policy.MaxPerUser:]
	}
	f.events[ev.UserID] = evs
}

// sameDay reports whether two times fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
