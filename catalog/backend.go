package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/sciencedock/describe"
	"github.com/jonwraymond/sciencedock/registry"
	"github.com/jonwraymond/sciencedock/task"
)

// ErrBackendDisabled is returned by Execute on a disabled backend.
var ErrBackendDisabled = errors.New("backend disabled")

// Backend serves the tasks of a registry as in-process tools.
//
// Contract:
// - Concurrency: safe for concurrent use once the registry is populated.
// - Context: Execute honors cancellation before calling the task.
// - Errors: ErrToolNotFound for unknown tools, ErrBackendDisabled when
// disabled, task errors unchanged otherwise.
type Backend struct {
	name    string
	reg     *registry.Registry
	logger  task.Logger
	mu      sync.RWMutex
	enabled bool
}

// NewBackend creates a backend named name over reg.
func NewBackend(name string, reg *registry.Registry) *Backend {
	return &Backend{name: name, reg: reg, enabled: true}
}

// Kind returns the backend kind.
func (b *Backend) Kind() string {
	return "local"
}

// Name returns the backend instance name, which is also the tool namespace.
func (b *Backend) Name() string {
	return b.name
}

// Enabled returns whether the backend is enabled.
func (b *Backend) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// SetEnabled enables or disables the backend.
func (b *Backend) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// ListTools returns one tool per registered task, in registration order.
func (b *Backend) ListTools(_ context.Context) ([]model.Tool, error) {
	tasks := b.reg.List()
	out := make([]model.Tool, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToolFor(t, b.name))
	}
	return out, nil
}

// Execute calls the task named tool. File inputs given as paths are read
// through their declared deserializer first.
func (b *Backend) Execute(ctx context.Context, tool string, args map[string]any) (any, error) {
	if !b.Enabled() {
		return nil, ErrBackendDisabled
	}
	t, ok := b.reg.Get(tool)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kwargs, err := readFiles(t, args)
	if err != nil {
		return nil, err
	}
	if b.logger != nil {
		t = t.With(task.WithLogger(b.logger))
	}
	return t.Invoke(ctx, kwargs)
}

func readFiles(t *task.Task, args map[string]any) (task.Args, error) {
	kwargs := make(task.Args, len(args))
	for k, v := range args {
		kwargs[k] = v
	}
	for _, in := range t.Description().Inputs() {
		if in.Kind != describe.KindFile || in.Deserializer == nil {
			continue
		}
		path, ok := kwargs[in.ID].(string)
		if !ok {
			continue
		}
		v, err := in.Deserializer(path)
		if err != nil {
			return nil, fmt.Errorf("%s: read input %s: %w", t.ID(), in.ID, err)
		}
		kwargs[in.ID] = v
	}
	return kwargs, nil
}
