package todo

// FilterMode selects which subset of the store a view shows.
type FilterMode string

const (
	FilterAll                FilterMode = "all"
	FilterActive             FilterMode = "active"
	FilterCompleted          FilterMode = "completed"
	FilterHighPriorityActive FilterMode = "high-priority-active"
)

func (m FilterMode) Valid() bool {
	switch m {
	case FilterAll, FilterActive, FilterCompleted, FilterHighPriorityActive:
		return true
	}
	return false
}

// Filter derives the visible task sequence for a mode. It never
// mutates its input and returns a fresh slice on every call. After the
// mode filter, high-priority tasks are moved to the front as a stable
// partition: relative order within each priority group is preserved.
func Filter(tasks []Task, mode FilterMode) []Task {
	var picked []Task
	for _, t := range tasks {
		switch mode {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterHighPriorityActive:
			if t.Completed || t.Priority != PriorityHigh {
				continue
			}
		}
		picked = append(picked, t)
	}

	out := make([]Task, 0, len(picked))
	for _, t := range picked {
		if t.Priority == PriorityHigh {
			out = append(out, t)
		}
	}
	for _, t := range picked {
		if t.Priority != PriorityHigh {
			out = append(out, t)
		}
	}
	return out
}

// Progress is the completed share as a whole percent, rounded to
// nearest. An empty collection is 0%, not a division by zero.
func Progress(completed, total int) int {
	if total == 0 {
		return 0
	}
	return (completed*100 + total/2) / total
}
