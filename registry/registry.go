package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jonwraymond/sciencedock/task"
)

// Errors returned by registry operations.
var (
	ErrTaskExists   = errors.New("task already registered")
	ErrTaskNotFound = errors.New("task not found")
)

// Registry manages task instances keyed by task id.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ordering: List returns tasks in registration order.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*task.Task
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tasks: make(map[string]*task.Task),
	}
}

// Default is the registry task packages register into.
var Default = New()

// Register adds a task to the registry.
func (r *Registry) Register(t *task.Task) error {
	if t == nil {
		return fmt.Errorf("task is nil")
	}
	id := t.ID()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tasks[id]; exists {
		return fmt.Errorf("%w: %s", ErrTaskExists, id)
	}
	r.tasks[id] = t
	r.order = append(r.order, id)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tasks ...*task.Task) {
	for _, t := range tasks {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Get retrieves a task by id.
func (r *Registry) Get(id string) (*task.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tasks[id]
	return t, ok
}

// Lookup is like Get but returns ErrTaskNotFound for unknown ids.
func (r *Registry) Lookup(id string) (*task.Task, error) {
	t, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// List returns all tasks in registration order.
func (r *Registry) List() []*task.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*task.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out
}

// Names returns task ids sorted for deterministic output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Register adds t to the Default registry.
func Register(t *task.Task) error {
	return Default.Register(t)
}

// MustRegister adds tasks to the Default registry, panicking on error.
func MustRegister(tasks ...*task.Task) {
	Default.MustRegister(tasks...)
}
