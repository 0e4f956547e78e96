// Package store implements the in-memory user state store.
// Per-user records are created lazily on first touch and live for the
// process lifetime. Records are never deleted here — account deletion
// belongs to the collaborator that owns persistence.
package store

import (
	"sync"

	"github.com/motiva-learn/motiva/internal/domain"
)

// entry wraps one user's state with its own mutex so concurrent callers
// mutating different users never contend, and callers mutating the same
// user serialize instead of racing read-modify-write cycles.
type entry struct {
	mu    sync.Mutex
	state domain.UserState
}

// Memory is a process-resident user state store.
// Iteration order is insertion order: leaderboard ties must keep the
// order users were first seen in.
type Memory struct {
	mu    sync.RWMutex
	users map[string]*entry
	order []string
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]*entry)}
}

// getOrCreate returns the entry for userID, creating a zero-valued
// record on first touch.
func (m *Memory) getOrCreate(userID string) *entry {
	m.mu.RLock()
	e, ok := m.users[userID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.users[userID]; ok {
		return e
	}
	e = &entry{state: domain.NewUserState(userID)}
	m.users[userID] = e
	m.order = append(m.order, userID)
	return e
}

// Get returns a copy of the user's state, creating it on first touch.
func (m *Memory) Get(userID string) domain.UserState {
	e := m.getOrCreate(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Update applies fn to the user's state under the per-user lock and
// returns a copy of the result. fn sees the live record and may mutate
// it freely; no other caller observes intermediate state.
func (m *Memory) Update(userID string, fn func(*domain.UserState)) domain.UserState {
	e := m.getOrCreate(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.state)
	return e.state.Clone()
}

// Snapshot returns copies of every user's state in insertion order.
func (m *Memory) Snapshot() []domain.UserState {
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.order))
	for _, id := range m.order {
		entries = append(entries, m.users[id])
	}
	m.mu.RUnlock()

	out := make([]domain.UserState, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.state.Clone())
		e.mu.Unlock()
	}
	return out
}

// Len returns the number of known users.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
