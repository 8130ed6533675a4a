package todo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

type seedEntry struct {
	Title     string   `json:"title"`
	Priority  Priority `json:"priority,omitempty"`
	Completed bool     `json:"completed,omitempty"`
}

// LoadSeedFile reads a JSON array of seed entries and turns them into
// tasks with fresh UUIDs. A non-empty result is meant to suppress the
// remote load. Entries with a blank title or an unknown priority are
// rejected so a bad seed file fails loudly at startup instead of
// producing a half-seeded store.
func LoadSeedFile(path string) ([]Task, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	now := time.Now().UTC()
	tasks := make([]Task, 0, len(entries))
	for i, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return nil, fmt.Errorf("seed entry %d: %w", i, ErrTitleRequired)
		}
		p := e.Priority
		if p == "" {
			p = PriorityMedium
		}
		if !p.Valid() {
			return nil, fmt.Errorf("seed entry %d: invalid priority %q", i, e.Priority)
		}
		tasks = append(tasks, Task{
			ID:        uuid.NewString(),
			Title:     title,
			Completed: e.Completed,
			Priority:  p,
			CreatedAt: now,
		})
	}
	return tasks, nil
}
