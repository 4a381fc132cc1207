package task

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonwraymond/sciencedock/describe"
)

// Args holds resolved arguments keyed by input id. An input that is optional
// and has no default is present with a nil value.
type Args map[string]any

// Result is the mapping a multi-output function returns, keyed by output id.
type Result map[string]any

// Func is a compute function wrapped by a Task.
type Func func(ctx context.Context, args Args) (any, error)

// Mode names the entry point a call came through.
type Mode string

// Execution modes.
const (
	ModeDescribe    Mode = "describe"
	ModeCommandLine Mode = "cli"
	ModeDirect      Mode = "direct"
)

// Task binds a compute function to its Description.
//
// Contract:
// - Concurrency: a Task is immutable after New and safe for concurrent use.
// The wrapped Func must be safe for whatever concurrency callers use.
// - Errors: validation errors are *ParamError values matching the Err*
// sentinels; they are returned before the function is called.
type Task struct {
	id   string
	desc *describe.Description
	fn   Func
	cfg  config
}

type config struct {
	params    []string
	stdout    io.Writer
	stderr    io.Writer
	logger    Logger
	pullImage bool
	image     string
}

// Option configures a Task.
type Option func(*config)

// WithParams sets the parameter names positional values are bound to in
// Invoke. The default is the declared input ids in order.
func WithParams(names ...string) Option {
	return func(c *config) {
		c.params = append([]string(nil), names...)
	}
}

// WithStdout sets where command-line mode writes documents and results.
func WithStdout(w io.Writer) Option {
	return func(c *config) {
		c.stdout = w
	}
}

// WithStderr sets where command-line mode writes usage and diagnostics.
func WithStderr(w io.Writer) Option {
	return func(c *config) {
		c.stderr = w
	}
}

// WithLogger sets the logger used for invocation tracing.
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithPullImage sets the pull_image flag of the rendered document.
func WithPullImage(pull bool) Option {
	return func(c *config) {
		c.pullImage = pull
	}
}

// WithDockerImage overrides the docker_image of the rendered document.
// An empty image keeps the one declared by the Description.
func WithDockerImage(image string) Option {
	return func(c *config) {
		c.image = image
	}
}

// New wraps fn with desc. id is the task identifier used as the first
// container argument and as the command-line program name.
func New(id string, desc *describe.Description, fn Func, opts ...Option) (*Task, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidTask)
	}
	if desc == nil {
		return nil, fmt.Errorf("%w: %s: description is nil", ErrInvalidTask, id)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %s: function is nil", ErrInvalidTask, id)
	}
	if err := desc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTask, id, err)
	}

	cfg := config{pullImage: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.applyDefaults(desc)

	return &Task{id: id, desc: desc, fn: fn, cfg: cfg}, nil
}

// Must is like New but panics on error. It is meant for package-level task
// declarations.
func Must(id string, desc *describe.Description, fn Func, opts ...Option) *Task {
	t, err := New(id, desc, fn, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// applyDefaults sets default values for unset config fields.
func (c *config) applyDefaults(desc *describe.Description) {
	if c.params == nil {
		for _, in := range desc.Inputs() {
			c.params = append(c.params, in.ID)
		}
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}
}

// With returns a copy of t with opts applied on top of its configuration.
// The function and Description are shared.
func (t *Task) With(opts ...Option) *Task {
	c := *t
	c.cfg.params = append([]string(nil), t.cfg.params...)
	for _, opt := range opts {
		if opt != nil {
			opt(&c.cfg)
		}
	}
	return &c
}

// ID returns the task identifier.
func (t *Task) ID() string {
	return t.id
}

// Description returns the task's Description.
func (t *Task) Description() *describe.Description {
	return t.desc
}

// Describe returns the rendered task document. It performs no parameter
// processing and never calls the function.
func (t *Task) Describe() describe.Document {
	doc := t.desc.Render(t.id, t.cfg.pullImage)
	if t.cfg.image != "" {
		doc.DockerImage = t.cfg.image
	}
	return doc
}

// Invoke calls the function directly. Positional values are bound to the
// parameter names in order and merged with kwargs; file inputs are passed
// through untouched. The function's result is returned unchanged.
func (t *Task) Invoke(ctx context.Context, kwargs Args, positional ...any) (any, error) {
	if len(positional) > len(t.cfg.params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d",
			ErrTooManyArguments, t.id, len(t.cfg.params), len(positional))
	}

	args := make(Args, len(kwargs)+len(positional))
	for i, v := range positional {
		args[t.cfg.params[i]] = v
	}
	for k, v := range kwargs {
		if _, dup := args[k]; dup {
			return nil, fmt.Errorf("%w: %s: %q", ErrDuplicateArgument, t.id, k)
		}
		args[k] = v
	}

	resolved, err := t.resolve(args)
	if err != nil {
		return nil, err
	}
	return t.call(ctx, ModeDirect, resolved)
}

// call runs the wrapped function with resolved arguments.
func (t *Task) call(ctx context.Context, mode Mode, args Args) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	t.cfg.logger.Logf("task %s: invoking (mode=%s)", t.id, mode)
	result, err := t.fn(ctx, args)
	if err != nil {
		t.cfg.logger.Logf("task %s: failed after %s: %v", t.id, time.Since(start), err)
		return nil, err
	}
	t.cfg.logger.Logf("task %s: completed in %s", t.id, time.Since(start))
	return result, nil
}
