package describe

import (
	"errors"
	"fmt"
)

// Builder errors reported by Description.Err.
var (
	ErrDuplicateID   = errors.New("duplicate id")
	ErrMissingID     = errors.New("id is required")
	ErrMissingValues = errors.New("enumeration requires values")
)

// Deserializer turns a raw command-line value, usually a file path, into the
// rich value handed to the compute function.
type Deserializer func(raw string) (any, error)

// Serializer persists a produced value to the given path.
type Serializer func(value any, path string) error

// InputSpec declares one task input.
type InputSpec struct {
	// ID names the command-line flag and the argument key.
	ID          string
	Name        string
	Description string
	Required    bool
	Kind        Kind

	// Default is meaningful only when HasDefault is set, so a nil or zero
	// default can still be declared.
	Default    any
	HasDefault bool

	// Values is the ordered set of allowed values. Required for enumerations,
	// optional for every other kind.
	Values []any

	// Deserializer is applied to file inputs in command-line mode only.
	Deserializer Deserializer

	Strip bool
	Lower bool
	Upper bool

	// Format is FormatDate or FormatDateTime for string inputs that carry
	// dates.
	Format string

	Min  *float64
	Max  *float64
	Step *float64
}

// OutputSpec declares one task output.
type OutputSpec struct {
	ID          string
	Name        string
	Description string
	Kind        Kind

	// Serializer writes new-file outputs in command-line mode.
	Serializer Serializer

	// Path is the file name used for a new-file output when the caller does
	// not supply one. Empty means the output id.
	Path string
}

// Description accumulates the inputs and outputs of one task.
//
// Contract:
// - Concurrency: building is not synchronized; a Description must be fully
// built before it is shared. Reads after that are safe for concurrent use.
// - Ownership: accessors return copies; the Description is never mutated by
// Render or by tasks using it.
type Description struct {
	name    string
	summary string
	image   string
	inputs  []InputSpec
	outputs []OutputSpec
	ids     map[string]struct{}
	errs    []error
}

// New starts a Description. image is the docker image the scheduler runs the
// task in.
func New(name, summary, image string) *Description {
	return &Description{
		name:    name,
		summary: summary,
		image:   image,
		ids:     make(map[string]struct{}),
	}
}

// Input appends an input declaration and returns d for chaining.
func (d *Description) Input(id, name, description string, required bool, kind Kind, opts ...InputOption) *Description {
	spec := InputSpec{
		ID:          id,
		Name:        name,
		Description: description,
		Required:    required,
		Kind:        kind,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}

	if !d.claim(id) {
		return d
	}
	if kind.IsEnum() && len(spec.Values) == 0 {
		d.errs = append(d.errs, fmt.Errorf("%w: input %q", ErrMissingValues, id))
	}
	d.inputs = append(d.inputs, spec)
	return d
}

// Output appends an output declaration and returns d for chaining.
func (d *Description) Output(id, name, description string, kind Kind, opts ...OutputOption) *Description {
	spec := OutputSpec{
		ID:          id,
		Name:        name,
		Description: description,
		Kind:        kind,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&spec)
		}
	}

	if !d.claim(id) {
		return d
	}
	d.outputs = append(d.outputs, spec)
	return d
}

// claim reserves id, recording an error when it is empty or already taken.
func (d *Description) claim(id string) bool {
	if id == "" {
		d.errs = append(d.errs, ErrMissingID)
		return false
	}
	if _, exists := d.ids[id]; exists {
		d.errs = append(d.errs, fmt.Errorf("%w: %q", ErrDuplicateID, id))
		return false
	}
	d.ids[id] = struct{}{}
	return true
}

// Err returns the problems recorded while building, joined, or nil.
func (d *Description) Err() error {
	return errors.Join(d.errs...)
}

// Name returns the display name.
func (d *Description) Name() string { return d.name }

// Summary returns the summary text.
func (d *Description) Summary() string { return d.summary }

// Image returns the docker image identifier.
func (d *Description) Image() string { return d.image }

// Inputs returns a copy of the input declarations in declaration order.
func (d *Description) Inputs() []InputSpec {
	out := make([]InputSpec, len(d.inputs))
	copy(out, d.inputs)
	return out
}

// Outputs returns a copy of the output declarations in declaration order.
func (d *Description) Outputs() []OutputSpec {
	out := make([]OutputSpec, len(d.outputs))
	copy(out, d.outputs)
	return out
}

// LookupInput returns the input declared with id.
func (d *Description) LookupInput(id string) (InputSpec, bool) {
	for _, in := range d.inputs {
		if in.ID == id {
			return in, true
		}
	}
	return InputSpec{}, false
}

// LookupOutput returns the output declared with id.
func (d *Description) LookupOutput(id string) (OutputSpec, bool) {
	for _, out := range d.outputs {
		if out.ID == id {
			return out, true
		}
	}
	return OutputSpec{}, false
}
