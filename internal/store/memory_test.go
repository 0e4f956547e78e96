package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/motiva-learn/motiva/internal/domain"
	"github.com/motiva-learn/motiva/internal/store"
)

func TestGet_CreatesOnFirstTouch(t *testing.T) {
	m := store.NewMemory()

	state := m.Get("u1")
	if state.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", state.UserID)
	}
	if state.Points != 0 || state.Streak.Current != 0 || len(state.Achievements) != 0 {
		t.Errorf("new state not zero-valued: %+v", state)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	// Second access reuses the record.
	m.Get("u1")
	if m.Len() != 1 {
		t.Errorf("Len after repeat access = %d, want 1", m.Len())
	}
}

func TestUpdate_MutatesInPlace(t *testing.T) {
	m := store.NewMemory()

	got := m.Update("u1", func(s *domain.UserState) {
		s.Points = 42
	})
	if got.Points != 42 {
		t.Errorf("returned points = %d, want 42", got.Points)
	}
	if m.Get("u1").Points != 42 {
		t.Errorf("stored points = %d, want 42", m.Get("u1").Points)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	m := store.NewMemory()

	state := m.Get("u1")
	state.Points = 999
	state.Achievements["sneaky"] = state.LastActivity

	fresh := m.Get("u1")
	if fresh.Points != 0 || len(fresh.Achievements) != 0 {
		t.Errorf("mutating a returned copy leaked into the store: %+v", fresh)
	}
}

func TestSnapshot_InsertionOrder(t *testing.T) {
	m := store.NewMemory()

	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		m.Get(id)
	}

	snap := m.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, id := range ids {
		if snap[i].UserID != id {
			t.Errorf("snapshot[%d] = %q, want %q (insertion order)", i, snap[i].UserID, id)
		}
	}
}

func TestUpdate_ConcurrentSameKey(t *testing.T) {
	m := store.NewMemory()

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				m.Update("shared", func(s *domain.UserState) {
					s.Points++
				})
			}
		}()
	}
	wg.Wait()

	if got := m.Get("shared").Points; got != workers*perWorker {
		t.Errorf("points = %d, want %d (lost updates)", got, workers*perWorker)
	}
}

func TestUpdate_ConcurrentDistinctKeys(t *testing.T) {
	m := store.NewMemory()

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", n)
			for i := 0; i < 100; i++ {
				m.Update(id, func(s *domain.UserState) {
					s.Points++
				})
			}
		}(w)
	}
	wg.Wait()

	if m.Len() != 16 {
		t.Errorf("Len = %d, want 16", m.Len())
	}
	for w := 0; w < 16; w++ {
		if got := m.Get(fmt.Sprintf("u%d", w)).Points; got != 100 {
			t.Errorf("u%d points = %d, want 100", w, got)
		}
	}
}
