package todo

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired = errors.New("title required")
	ErrLimitReached  = errors.New("task limit reached")
)

const DefaultMaxTodos = 100

// Store is the authoritative in-memory task collection for one session.
// Order is insertion order. All mutations are synchronous; the mutex is
// there because HTTP handlers call in concurrently.
type Store struct {
	mu          sync.Mutex
	tasks       []Task
	maxTodos    int
	lastUpdated time.Time
}

func NewStore(maxTodos int) *Store {
	if maxTodos <= 0 {
		maxTodos = DefaultMaxTodos
	}
	return &Store{maxTodos: maxTodos}
}

// Add appends a new task. The title is trimmed first; an empty result
// is rejected with ErrTitleRequired. Adding at capacity is rejected
// with ErrLimitReached, never truncated. An empty priority defaults to
// medium.
func (s *Store) Add(title string, p Priority) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrTitleRequired
	}
	if p == "" {
		p = PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) >= s.maxTodos {
		return Task{}, ErrLimitReached
	}

	t := Task{
		ID:        uuid.NewString(),
		Title:     title,
		Priority:  p,
		CreatedAt: time.Now().UTC(),
	}
	s.tasks = append(s.tasks, t)
	s.lastUpdated = time.Now().UTC()
	return t, nil
}

// Toggle flips the completion flag of the task with the given id.
// Unknown ids are a silent no-op; the return value reports whether a
// task was found.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.lastUpdated = time.Now().UTC()
			return true
		}
	}
	return false
}

// Remove deletes the task with the given id. Idempotent: a second call
// for the same id is a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.lastUpdated = time.Now().UTC()
			return true
		}
	}
	return false
}

// ClearCompleted removes every completed task and returns how many
// were removed.
func (s *Store) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed > 0 {
		s.lastUpdated = time.Now().UTC()
	}
	return removed
}

// CompleteAll marks every task completed and returns how many actually
// changed state.
func (s *Store) CompleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.tasks {
		if !s.tasks[i].Completed {
			s.tasks[i].Completed = true
			changed++
		}
	}
	if changed > 0 {
		s.lastUpdated = time.Now().UTC()
	}
	return changed
}

// Merge appends externally sourced tasks as-is. It does not dedupe by
// id; keeping ids unique is the caller's job. Appending (rather than
// replacing) means tasks added while a remote load was in flight are
// preserved.
func (s *Store) Merge(tasks []Task) {
	if len(tasks) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, tasks...)
	s.lastUpdated = time.Now().UTC()
}

// Snapshot returns a copy of the current task list in insertion order.
func (s *Store) Snapshot() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Counts returns total, remaining (not completed) and completed.
func (s *Store) Counts() (total, remaining, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total = len(s.tasks)
	for _, t := range s.tasks {
		if !t.Completed {
			remaining++
		}
	}
	completed = total - remaining
	return total, remaining, completed
}

// Progress returns the completed share as a whole percent.
func (s *Store) Progress() int {
	total, _, completed := s.Counts()
	return Progress(completed, total)
}

func (s *Store) LastUpdated() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}
