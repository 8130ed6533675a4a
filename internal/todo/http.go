package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// LoadState is what the summary endpoint exposes about the one-shot
// remote seed: whether it is still in flight and its (dismissable)
// error message.
type LoadState interface {
	Loading() bool
	Err() string
	Dismiss()
}

type createTodoRequest struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errResponse struct {
	Error   string       `json:"error"`
	Details []fieldError `json:"details,omitempty"`
}

type summaryResponse struct {
	Total       int       `json:"total"`
	Remaining   int       `json:"remaining"`
	Completed   int       `json:"completed"`
	Progress    int       `json:"progress"`
	LastUpdated time.Time `json:"last_updated"`
	Loading     bool      `json:"loading"`
	Error       string    `json:"error,omitempty"`
}

// RegisterRoutes mounts the rendering boundary: the visible sequence,
// the counters, and the mutation actions. Mutations on unknown ids
// answer 204 like any other; not-found is a silent no-op by contract.
func RegisterRoutes(r chi.Router, s *Store, ls LoadState, priorityEnabled bool) {
	r.Get("/todos", listTodos(s, priorityEnabled))
	r.Post("/todos", createTodo(s, priorityEnabled))
	r.Get("/todos/summary", getSummary(s, ls))
	r.Delete("/todos/error", dismissError(ls))
	r.Post("/todos/complete-all", completeAll(s))
	r.Delete("/todos/completed", clearCompleted(s))
	r.Post("/todos/{id}/toggle", toggleTodo(s))
	r.Delete("/todos/{id}", removeTodo(s))
}

func listTodos(s *Store, priorityEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		mode := FilterMode(r.URL.Query().Get("filter"))
		if mode == "" {
			mode = FilterAll
		}
		if !mode.Valid() || (mode == FilterHighPriorityActive && !priorityEnabled) {
			writeJSON(w, http.StatusUnprocessableEntity, errResponse{
				Error: "validation_error",
				Details: []fieldError{
					{Field: "filter", Message: fmt.Sprintf("unknown filter %q", mode)},
				},
			})
			return
		}

		visible := Filter(s.Snapshot(), mode)
		if visible == nil {
			visible = []Task{}
		}
		writeJSON(w, http.StatusOK, visible)
	}
}

func createTodo(s *Store, priorityEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req createTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: "invalid_json"})
			return
		}

		if req.Priority != "" {
			if !priorityEnabled {
				req.Priority = PriorityMedium
			} else if !req.Priority.Valid() {
				writeJSON(w, http.StatusUnprocessableEntity, errResponse{
					Error: "validation_error",
					Details: []fieldError{
						{Field: "priority", Message: "priority must be low, medium or high"},
					},
				})
				return
			}
		}

		t, err := s.Add(req.Title, req.Priority)
		switch {
		case errors.Is(err, ErrTitleRequired):
			writeJSON(w, http.StatusUnprocessableEntity, errResponse{
				Error: "validation_error",
				Details: []fieldError{
					{Field: "title", Message: "title is required"},
				},
			})
		case errors.Is(err, ErrLimitReached):
			writeJSON(w, http.StatusConflict, errResponse{Error: "limit_reached"})
		case err != nil:
			writeJSON(w, http.StatusInternalServerError, errResponse{Error: "unexpected_error"})
		default:
			writeJSON(w, http.StatusCreated, t)
		}
	}
}

func getSummary(s *Store, ls LoadState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		total, remaining, completed := s.Counts()
		writeJSON(w, http.StatusOK, summaryResponse{
			Total:       total,
			Remaining:   remaining,
			Completed:   completed,
			Progress:    Progress(completed, total),
			LastUpdated: s.LastUpdated(),
			Loading:     ls.Loading(),
			Error:       ls.Err(),
		})
	}
}

func dismissError(ls LoadState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ls.Dismiss()
		w.WriteHeader(http.StatusNoContent)
	}
}

func toggleTodo(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Toggle(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func removeTodo(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Remove(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func completeAll(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.CompleteAll()
		w.WriteHeader(http.StatusNoContent)
	}
}

func clearCompleted(s *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearCompleted()
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
