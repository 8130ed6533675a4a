package todo

import (
	"fmt"
	"testing"
	"time"
)

func TestStore_AddAndCounts(t *testing.T) {
	s := NewStore(10)

	if total, remaining, completed := countsOf(s); total != 0 || remaining != 0 || completed != 0 {
		t.Fatalf("fresh store should be empty, got %d/%d/%d", total, remaining, completed)
	}

	task, err := s.Add("Buy milk", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.ID == "" {
		t.Errorf("expected a fresh id")
	}
	if task.Completed {
		t.Errorf("new tasks should default to Completed=false")
	}
	if task.Priority != PriorityMedium {
		t.Errorf("blank priority should default to medium, got %q", task.Priority)
	}
	if task.CreatedAt.IsZero() {
		t.Errorf("expected CreatedAt to be set")
	}

	if s.Len() != 1 {
		t.Fatalf("expected size 1, got %d", s.Len())
	}
	if _, remaining, _ := countsOf(s); remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", remaining)
	}
}

func TestStore_AddTrimsTitle(t *testing.T) {
	s := NewStore(10)

	task, err := s.Add("  walk the dog  ", PriorityHigh)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.Title != "walk the dog" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
}

func TestStore_AddRejectsEmptyTitle(t *testing.T) {
	s := NewStore(10)

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(title, ""); err != ErrTitleRequired {
			t.Errorf("Add(%q): expected ErrTitleRequired, got %v", title, err)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("rejected adds must not grow the store, size=%d", s.Len())
	}
}

func TestStore_AddRejectsAtCapacity(t *testing.T) {
	s := NewStore(2)

	if _, err := s.Add("one", ""); err != nil {
		t.Fatalf("add one: %v", err)
	}
	if _, err := s.Add("two", ""); err != nil {
		t.Fatalf("add two: %v", err)
	}
	if _, err := s.Add("x", ""); err != ErrLimitReached {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("size must stay 2, got %d", s.Len())
	}

	// making room lifts the rejection
	snap := s.Snapshot()
	if !s.Remove(snap[0].ID) {
		t.Fatalf("remove should find %s", snap[0].ID)
	}
	if _, err := s.Add("three", ""); err != nil {
		t.Fatalf("add after remove: %v", err)
	}
}

func TestStore_AddGrowsByOneUntilCap(t *testing.T) {
	const limit = 5
	s := NewStore(limit)

	for i := 0; i < limit+3; i++ {
		before := s.Len()
		_, err := s.Add(fmt.Sprintf("task %d", i), "")
		if before < limit {
			if err != nil {
				t.Fatalf("add %d: %v", i, err)
			}
			if s.Len() != before+1 {
				t.Fatalf("add %d: size %d -> %d, want +1", i, before, s.Len())
			}
		} else {
			if err != ErrLimitReached {
				t.Fatalf("add %d: expected ErrLimitReached, got %v", i, err)
			}
			if s.Len() != before {
				t.Fatalf("add %d at cap changed size %d -> %d", i, before, s.Len())
			}
		}
	}
}

func TestStore_ToggleIsItsOwnInverse(t *testing.T) {
	s := NewStore(10)
	task, err := s.Add("flip me", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if !s.Toggle(task.ID) {
		t.Fatalf("toggle should find %s", task.ID)
	}
	if got := s.Snapshot()[0]; !got.Completed {
		t.Fatalf("expected completed after first toggle")
	}

	if !s.Toggle(task.ID) {
		t.Fatalf("second toggle should still find %s", task.ID)
	}
	if got := s.Snapshot()[0]; got.Completed {
		t.Fatalf("two toggles must restore the prior state")
	}
}

func TestStore_ToggleUnknownIDIsNoop(t *testing.T) {
	s := NewStore(10)
	if _, err := s.Add("untouched", ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	if s.Toggle("no-such-id") {
		t.Fatalf("unknown id should not be found")
	}
	if got := s.Snapshot()[0]; got.Completed {
		t.Fatalf("no-op toggle must not change any task")
	}
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := NewStore(10)
	task, err := s.Add("delete me", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if !s.Remove(task.ID) {
		t.Fatalf("first remove should succeed")
	}
	if s.Remove(task.ID) {
		t.Fatalf("second remove must be a no-op")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, size=%d", s.Len())
	}
}

func TestStore_ClearCompleted(t *testing.T) {
	s := NewStore(10)
	a, _ := s.Add("done", "")
	b, _ := s.Add("pending", "")
	c, _ := s.Add("also done", "")
	s.Toggle(a.ID)
	s.Toggle(c.ID)

	if removed := s.ClearCompleted(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != b.ID {
		t.Fatalf("expected only %s to survive, got %+v", b.ID, snap)
	}

	// nothing left to clear
	if removed := s.ClearCompleted(); removed != 0 {
		t.Fatalf("expected 0 removed, got %d", removed)
	}
}

func TestStore_CompleteAll(t *testing.T) {
	s := NewStore(10)
	s.Add("one", "")
	b, _ := s.Add("two", "")
	s.Toggle(b.ID)

	if changed := s.CompleteAll(); changed != 1 {
		t.Fatalf("expected 1 changed, got %d", changed)
	}
	for _, task := range s.Snapshot() {
		if !task.Completed {
			t.Fatalf("task %s not completed", task.ID)
		}
	}
	if s.Progress() != 100 {
		t.Fatalf("expected 100%% progress, got %d", s.Progress())
	}
}

func TestStore_MergeIsAdditive(t *testing.T) {
	s := NewStore(10)
	local, err := s.Add("added while loading", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	now := time.Now().UTC()
	s.Merge([]Task{
		{ID: "1", Title: "remote one", Priority: PriorityMedium, CreatedAt: now},
		{ID: "2", Title: "remote two", Completed: true, Priority: PriorityMedium, CreatedAt: now},
	})

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 tasks after merge, got %d", len(snap))
	}
	if snap[0].ID != local.ID {
		t.Fatalf("merge must append, not replace: first task is %s", snap[0].ID)
	}
}

func TestStore_LastUpdatedMovesOnMutation(t *testing.T) {
	s := NewStore(10)
	if !s.LastUpdated().IsZero() {
		t.Fatalf("fresh store should have zero lastUpdated")
	}

	task, _ := s.Add("tick", "")
	first := s.LastUpdated()
	if first.IsZero() {
		t.Fatalf("add should bump lastUpdated")
	}

	// silent no-ops leave the timestamp alone
	s.Toggle("missing")
	s.Remove("missing")
	if got := s.LastUpdated(); !got.Equal(first) {
		t.Fatalf("no-op mutations must not bump lastUpdated")
	}

	s.Toggle(task.ID)
	if got := s.LastUpdated(); got.Before(first) {
		t.Fatalf("toggle should bump lastUpdated")
	}
}

func TestStore_Scenario_AddToggleProgress(t *testing.T) {
	s := NewStore(10)

	milk, err := s.Add("Buy milk", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if total, remaining, _ := countsOf(s); total != 1 || remaining != 1 {
		t.Fatalf("after add: total=%d remaining=%d", total, remaining)
	}

	if _, err := s.Add("", ""); err != ErrTitleRequired {
		t.Fatalf("empty title: expected ErrTitleRequired, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("rejected add changed size to %d", s.Len())
	}

	s.Toggle(milk.ID)
	total, remaining, completed := countsOf(s)
	if remaining != 0 || completed != 1 {
		t.Fatalf("after toggle: remaining=%d completed=%d", remaining, completed)
	}
	if p := Progress(completed, total); p != 100 {
		t.Fatalf("expected progress 100, got %d", p)
	}
}

func countsOf(s *Store) (total, remaining, completed int) {
	return s.Counts()
}
