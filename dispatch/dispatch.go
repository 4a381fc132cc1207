package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonwraymond/sciencedock/describe"
	"github.com/jonwraymond/sciencedock/registry"
	"github.com/jonwraymond/sciencedock/task"
)

// Errors returned by the dispatcher.
var (
	ErrRegistryRequired = errors.New("dispatch: Registry is required")
	ErrTaskNotFound     = errors.New("task not found")
)

// Options configures a Dispatcher.
type Options struct {
	// Stdout receives documents and task results.
	// Default: os.Stdout
	Stdout io.Writer

	// Stderr receives diagnostics.
	// Default: os.Stderr
	Stderr io.Writer

	// Logger traces dispatch and task invocation.
	// Optional.
	Logger task.Logger

	// PullImage overrides the pull_image flag of every task document.
	// Nil keeps each task's own setting.
	PullImage *bool

	// DockerImage overrides the docker_image of every task document.
	// Empty keeps each task's own image.
	DockerImage string
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Dispatcher routes entry-point invocations to registered tasks.
type Dispatcher struct {
	reg  *registry.Registry
	opts Options
}

// New creates a Dispatcher over reg.
func New(reg *registry.Registry, opts Options) (*Dispatcher, error) {
	if reg == nil {
		return nil, ErrRegistryRequired
	}
	opts.applyDefaults()
	return &Dispatcher{reg: reg, opts: opts}, nil
}

// Documents returns the document of every registered task in registration
// order.
func (d *Dispatcher) Documents() []describe.Document {
	tasks := d.reg.List()
	docs := make([]describe.Document, 0, len(tasks))
	for _, t := range tasks {
		docs = append(docs, d.bind(t).Describe())
	}
	return docs
}

// Run handles one entry-point invocation.
func (d *Dispatcher) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		enc := json.NewEncoder(d.opts.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(d.Documents())
	}

	name := args[0]
	t, ok := d.find(name)
	if !ok {
		fmt.Fprintf(d.opts.Stderr, "Task %q not found.\n", name)
		return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}
	d.logf("dispatch: running %s with %d argument(s)", name, len(args)-1)
	return t.RunCommandLine(ctx, append([]string{}, args[1:]...))
}

// find matches name against the first container argument of each task's
// document.
func (d *Dispatcher) find(name string) (*task.Task, bool) {
	for _, t := range d.reg.List() {
		bound := d.bind(t)
		doc := bound.Describe()
		if len(doc.ContainerArgs) > 0 && doc.ContainerArgs[0] == name {
			return bound, true
		}
	}
	return nil, false
}

// bind points t at the dispatcher's streams and logger.
func (d *Dispatcher) bind(t *task.Task) *task.Task {
	opts := []task.Option{
		task.WithStdout(d.opts.Stdout),
		task.WithStderr(d.opts.Stderr),
	}
	if d.opts.Logger != nil {
		opts = append(opts, task.WithLogger(d.opts.Logger))
	}
	if d.opts.PullImage != nil {
		opts = append(opts, task.WithPullImage(*d.opts.PullImage))
	}
	if d.opts.DockerImage != "" {
		opts = append(opts, task.WithDockerImage(d.opts.DockerImage))
	}
	return t.With(opts...)
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Logf(format, args...)
	}
}
