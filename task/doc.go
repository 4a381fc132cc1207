// Package task wraps a plain compute function with its describe.Description
// and exposes it through three entry points that share one validation path:
//
//   - [Task.Describe] renders the task document for the scheduler.
//   - [Task.RunCommandLine] synthesizes a command line from the declared
//     inputs and outputs, deserializes file inputs, serializes new-file
//     outputs and prints the result mapping as JSON.
//   - [Task.Invoke] calls the function directly with positional and keyword
//     arguments, as a library call.
//
// # Validation
//
// Command-line and direct calls resolve every declared input in declaration
// order: a supplied value is coerced to its kind (string normalization and
// dates, booleans, integers, numbers) and checked against its allowed values;
// otherwise the declared default is used verbatim; otherwise a required input
// fails with [ErrMissingRequired]; otherwise the input is present with a nil
// value. All inputs are resolved before the function runs, so a validation
// failure never produces partial output.
//
// # Command-line results
//
// A task with no outputs prints nothing. A task with one output may return
// the bare value; it is reported under the output id. Tasks with several
// outputs return a [Result] keyed by output id. New-file outputs are written
// with their serializer and reported by path.
package task
