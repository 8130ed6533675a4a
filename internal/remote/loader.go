package remote

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/taskdeck/todo-widget-GO/internal/todo"
)

// priorityCycle assigns a synthetic priority to seeded tasks by
// position, so a fresh list shows a mix.
var priorityCycle = []todo.Priority{todo.PriorityHigh, todo.PriorityMedium, todo.PriorityLow}

// Loader performs the one-shot seed of the store. Load runs its fetch
// at most once per Loader no matter how often it is called; the result
// (error state, loading flag) is readable through the LoadState
// interface the summary endpoint consumes.
type Loader struct {
	client         *Client
	store          *todo.Store
	limit          int
	enablePriority bool
	logger         *slog.Logger

	once    sync.Once
	mu      sync.Mutex
	loading bool
	errMsg  string
}

func NewLoader(client *Client, store *todo.Store, limit int, enablePriority bool, logger *slog.Logger) *Loader {
	return &Loader{
		client:         client,
		store:          store,
		limit:          limit,
		enablePriority: enablePriority,
		logger:         logger,
	}
}

// Load fetches the seed batch and merges it into the store. The merge
// is an append, so tasks the user added while the fetch was in flight
// survive. When ctx is cancelled (owner torn down) the merge is
// skipped entirely; there is no retry and no partial apply.
func (l *Loader) Load(ctx context.Context) {
	l.once.Do(func() { l.load(ctx) })
}

func (l *Loader) load(ctx context.Context) {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	todos, err := l.client.FetchTodos(ctx, l.limit)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false

	if err != nil {
		if ctx.Err() == nil {
			l.errMsg = "could not load tasks: " + err.Error()
			l.logger.Error("seed_load_failed", slog.String("error", err.Error()))
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	l.store.Merge(l.mapTodos(todos))
	l.logger.Info("seed_load_done", slog.Int("count", len(todos)))
}

func (l *Loader) mapTodos(todos []Todo) []todo.Task {
	now := time.Now().UTC()
	tasks := make([]todo.Task, 0, len(todos))
	for i, r := range todos {
		p := todo.PriorityMedium
		if l.enablePriority {
			p = priorityCycle[i%len(priorityCycle)]
		}
		tasks = append(tasks, todo.Task{
			ID:        strconv.Itoa(r.ID),
			Title:     r.Title,
			Completed: r.Completed,
			Priority:  p,
			OwnerID:   strconv.Itoa(r.UserID),
			CreatedAt: now,
		})
	}
	return tasks
}

func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *Loader) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Dismiss clears the load error. The UI shows it as a dismissable
// notice, so the boundary needs a way to drop it.
func (l *Loader) Dismiss() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = ""
}
