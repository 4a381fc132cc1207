package task

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/sciencedock/describe"
)

// JSONFlag is the reserved flag that, as the sole argument, prints the task
// document instead of running the task.
const JSONFlag = "--json"

// cliValues holds the flags a command line actually bound.
type cliValues struct {
	inputs  map[string]any
	outputs map[string]string
}

// RunCommandLine runs the task as a command-line program. A nil args means
// os.Args[1:].
//
// With JSONFlag as the only argument the rendered document is written to
// stdout. Otherwise the arguments are parsed against one flag per declared
// input and output, file inputs are deserialized, inputs are validated, the
// function is called, new-file outputs are serialized, and the output
// mapping is written to stdout as JSON. Exactly one document is written on
// success and nothing on failure.
func (t *Task) RunCommandLine(ctx context.Context, args []string) error {
	if args == nil {
		args = os.Args[1:]
	}
	if len(args) == 1 && args[0] == JSONFlag {
		return writeJSON(t.cfg.stdout, t.Describe())
	}

	values, run, err := t.parseCommandLine(ctx, args)
	if err != nil {
		return err
	}
	if !run {
		// --help was handled by the parser.
		return nil
	}

	kwargs := make(Args, len(values.inputs))
	for _, in := range t.desc.Inputs() {
		raw, ok := values.inputs[in.ID]
		if !ok {
			continue
		}
		if in.Kind == describe.KindFile && in.Deserializer != nil {
			v, err := in.Deserializer(fmt.Sprint(raw))
			if err != nil {
				return fmt.Errorf("%s: read input %s: %w", t.id, in.ID, err)
			}
			raw = v
		}
		kwargs[in.ID] = raw
	}

	resolved, err := t.resolve(kwargs)
	if err != nil {
		return err
	}
	result, err := t.call(ctx, ModeCommandLine, resolved)
	if err != nil {
		return err
	}

	outputs := t.desc.Outputs()
	if len(outputs) == 0 {
		return nil
	}
	payload, err := t.shapeResult(outputs, result)
	if err != nil {
		return err
	}

	for _, out := range outputs {
		v, ok := payload[out.ID]
		if !ok || out.Kind != describe.KindNewFile {
			continue
		}
		path := outputPath(out, values.outputs)
		if out.Serializer != nil {
			if err := out.Serializer(v, path); err != nil {
				return fmt.Errorf("%s: write output %s to %s: %w", t.id, out.ID, path, err)
			}
			t.cfg.logger.Logf("task %s: wrote %s to %s", t.id, out.ID, path)
		}
		payload[out.ID] = path
	}

	return writeJSON(t.cfg.stdout, payload)
}

// parseCommandLine binds args to the task's flags. run is false when the
// parser handled the invocation itself, as with --help.
func (t *Task) parseCommandLine(ctx context.Context, args []string) (cliValues, bool, error) {
	run := false
	cmd := &cobra.Command{
		Use:           t.id,
		Short:         t.desc.Name(),
		Long:          t.desc.Name() + "\n" + t.desc.Summary(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			run = true
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetArgs(args)
	cmd.SetOut(t.cfg.stdout)
	cmd.SetErr(t.cfg.stderr)

	flags := cmd.Flags()
	inputs := t.desc.Inputs()
	outputs := t.desc.Outputs()
	for _, in := range inputs {
		var def string
		if in.HasDefault {
			def = describeValue(in.Default)
		}
		flags.String(in.ID, def, in.Name)
		if in.Required {
			_ = cmd.MarkFlagRequired(in.ID)
		}
	}
	for _, out := range outputs {
		flags.String(out.ID, "", out.Name)
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		return cliValues{}, false, fmt.Errorf("%w: %s: %v", ErrUsage, t.id, err)
	}

	values := cliValues{
		inputs:  make(map[string]any),
		outputs: make(map[string]string),
	}
	for _, in := range inputs {
		f := flags.Lookup(in.ID)
		switch {
		case f.Changed:
			values.inputs[in.ID] = f.Value.String()
		case in.HasDefault && in.Default != nil:
			// Parser-bound default keeps its declared type.
			values.inputs[in.ID] = in.Default
		}
	}
	for _, out := range outputs {
		if f := flags.Lookup(out.ID); f.Changed {
			values.outputs[out.ID] = f.Value.String()
		}
	}
	return values, run, nil
}

// shapeResult turns the function result into a mapping keyed by output id.
// A single declared output wraps the bare result.
func (t *Task) shapeResult(outputs []describe.OutputSpec, result any) (Result, error) {
	if len(outputs) == 1 {
		return Result{outputs[0].ID: result}, nil
	}

	var src map[string]any
	switch r := result.(type) {
	case Result:
		src = r
	case Args:
		src = r
	case map[string]any:
		src = r
	default:
		return nil, fmt.Errorf("%w: %s returned %T", ErrResultShape, t.id, result)
	}

	out := make(Result, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, nil
}

// outputPath picks the destination of a new-file output: the flag value,
// then the declared path, then the output id.
func outputPath(out describe.OutputSpec, flags map[string]string) string {
	if p, ok := flags[out.ID]; ok && p != "" {
		return p
	}
	if out.Path != "" {
		return out.Path
	}
	return out.ID
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
