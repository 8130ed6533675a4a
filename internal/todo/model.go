package todo

import "time"

// Priority buckets for a task. The zero value is not valid; callers
// that don't care should pass PriorityMedium (or "" to Store.Add, which
// defaults it).
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item. IDs are opaque strings: locally created
// tasks carry a UUID, remotely seeded ones the decimal form of the
// upstream integer id. One type end-to-end, compared with ==.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
