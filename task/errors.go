package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/sciencedock/describe"
)

// Sentinel errors for error classification.
var (
	// ErrMissingRequired indicates a required input without a value or default.
	ErrMissingRequired = errors.New("missing required parameter")

	// ErrInvalidValue indicates a value that cannot be coerced to its kind.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidEnumValue indicates a coerced value outside the allowed set.
	ErrInvalidEnumValue = errors.New("invalid enumeration value")

	// ErrInvalidDateFormat indicates a date or date-time input that does not parse.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrTooManyArguments indicates more positional values than parameters.
	ErrTooManyArguments = errors.New("too many positional arguments")

	// ErrDuplicateArgument indicates a parameter given both positionally and by name.
	ErrDuplicateArgument = errors.New("argument given twice")

	// ErrResultShape indicates a multi-output task whose result is not keyed
	// by output id.
	ErrResultShape = errors.New("result is not a mapping of outputs")

	// ErrInvalidTask indicates a task that cannot be constructed.
	ErrInvalidTask = errors.New("invalid task")

	// ErrUsage indicates a command line rejected by the argument parser.
	ErrUsage = errors.New("usage error")
)

// ParamError describes a parameter that failed validation.
type ParamError struct {
	// Err is one of ErrMissingRequired, ErrInvalidValue, ErrInvalidEnumValue
	// or ErrInvalidDateFormat.
	Err error

	// ID is the input id.
	ID string

	// Value is the raw value as supplied. Nil for ErrMissingRequired.
	Value any

	// Expected is the declared kind of the input.
	Expected describe.Kind

	// Allowed lists the allowed values for ErrInvalidEnumValue.
	Allowed []any
}

// Error returns a message naming the parameter and the offending value.
func (e *ParamError) Error() string {
	switch e.Err {
	case ErrMissingRequired:
		return fmt.Sprintf("input %q is required", e.ID)
	case ErrInvalidEnumValue:
		allowed := make([]string, len(e.Allowed))
		for i, v := range e.Allowed {
			allowed[i] = fmt.Sprint(v)
		}
		return fmt.Sprintf("invalid value for %s: %q. allowed values: %s",
			e.ID, fmt.Sprint(e.Value), strings.Join(allowed, ", "))
	case ErrInvalidDateFormat:
		return fmt.Sprintf("invalid date format for parameter %s: %q", e.ID, fmt.Sprint(e.Value))
	default:
		return fmt.Sprintf("invalid value for %s parameter %s: %q", e.Expected, e.ID, fmt.Sprint(e.Value))
	}
}

// Unwrap returns the sentinel for use with errors.Is.
func (e *ParamError) Unwrap() error {
	return e.Err
}
