package task

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/sciencedock/describe"
)

func TestNew_Errors(t *testing.T) {
	valid := describe.New("x", "", "img").Input("a", "A", "", true, describe.KindString)
	broken := describe.New("x", "", "img").
		Input("a", "A", "", true, describe.KindString).
		Input("a", "A", "", true, describe.KindString)
	fn := func(context.Context, Args) (any, error) { return nil, nil }

	tests := []struct {
		name string
		id   string
		desc *describe.Description
		fn   Func
	}{
		{"empty id", "", valid, fn},
		{"nil description", "x", nil, fn},
		{"nil function", "x", valid, nil},
		{"duplicate ids", "x", broken, fn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.desc, tt.fn)
			if !errors.Is(err, ErrInvalidTask) {
				t.Errorf("New() error = %v, want %v", err, ErrInvalidTask)
			}
		})
	}

	_, err := New("x", broken, fn)
	if !errors.Is(err, describe.ErrDuplicateID) {
		t.Errorf("New() error = %v, want to wrap %v", err, describe.ErrDuplicateID)
	}
}

func TestMust_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() did not panic on a nil function")
		}
	}()
	Must("x", describe.New("x", "", "img"), nil)
}

func TestTask_Describe(t *testing.T) {
	rec := &recorder{}
	desc := describe.New("Echo", "Echoes.", "img").
		Input("text", "Text", "", true, describe.KindString).
		Output("result", "Result", "", describe.KindString)
	tk, _, _ := newTestTask(t, desc, rec, WithPullImage(false))

	doc := tk.Describe()
	if rec.calls != 0 {
		t.Errorf("Describe() invoked the function %d times", rec.calls)
	}
	if doc.ContainerArgs[0] != "test_task" {
		t.Errorf("ContainerArgs[0] = %q, want %q", doc.ContainerArgs[0], "test_task")
	}
	if doc.PullImage {
		t.Error("PullImage = true, want false")
	}
	if tk.ID() != "test_task" || tk.Description() != desc {
		t.Error("accessors do not return construction values")
	}
}

func TestInvoke_Defaults(t *testing.T) {
	rec := &recorder{result: "ok"}
	type payload struct{ n int }
	def := &payload{n: 1}
	desc := describe.New("x", "", "img").
		Input("count", "Count", "", false, describe.KindInteger, describe.WithDefault("7")).
		Input("obj", "Object", "", false, describe.KindString, describe.WithDefault(def)).
		Input("opt", "Optional", "", false, describe.KindString)
	tk, _, _ := newTestTask(t, desc, rec)

	result, err := tk.Invoke(context.Background(), nil)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if result != "ok" {
		t.Errorf("Invoke() = %v, want %v", result, "ok")
	}

	// Defaults are used verbatim, without coercion.
	if rec.last["count"] != "7" {
		t.Errorf("count = %#v, want %#v", rec.last["count"], "7")
	}
	if rec.last["obj"] != def {
		t.Errorf("obj = %#v, want the declared default", rec.last["obj"])
	}
	v, ok := rec.last["opt"]
	if !ok || v != nil {
		t.Errorf("opt = %#v (present %v), want explicit nil", v, ok)
	}
}

func TestInvoke_MissingRequired(t *testing.T) {
	rec := &recorder{}
	desc := describe.New("x", "", "img").
		Input("first", "First", "", false, describe.KindString).
		Input("data", "Data", "", true, describe.KindFile)
	tk, _, _ := newTestTask(t, desc, rec)

	_, err := tk.Invoke(context.Background(), Args{"first": "a"})
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("Invoke() error = %v, want %v", err, ErrMissingRequired)
	}
	var pe *ParamError
	if !errors.As(err, &pe) || pe.ID != "data" {
		t.Errorf("ParamError = %+v, want ID %q", pe, "data")
	}
	if !strings.Contains(err.Error(), `"data"`) {
		t.Errorf("error message %q does not name the input", err)
	}
	if rec.calls != 0 {
		t.Error("function was called despite a validation failure")
	}
}

func TestInvoke_Coercion(t *testing.T) {
	tests := []struct {
		name string
		spec describe.InputOption
		kind describe.Kind
		in   any
		want any
	}{
		{"strip lower", combine(describe.WithStrip(), describe.WithLower()), describe.KindString, "  Foo ", "foo"},
		{"strip upper", combine(describe.WithStrip(), describe.WithUpper()), describe.KindString, " foo", "FOO"},
		{"lower then upper", combine(describe.WithLower(), describe.WithUpper()), describe.KindString, "MiXed", "MIXED"},
		{"no normalization", nil, describe.KindString, "  Foo ", "  Foo "},
		{"normalized idempotent", combine(describe.WithStrip(), describe.WithLower()), describe.KindString, "foo", "foo"},
		{"integer string", nil, describe.KindInteger, "42", 42},
		{"integer padded", nil, describe.KindInteger, " 08 ", 8},
		{"integer from float", nil, describe.KindInteger, 3.0, 3},
		{"number string", nil, describe.KindNumber, "2.5", 2.5},
		{"number from int", nil, describe.KindNumber, 3, 3.0},
		{"bool yes", nil, describe.KindBoolean, "Yes", true},
		{"bool off", nil, describe.KindBoolean, "off", false},
		{"bool passthrough", nil, describe.KindBoolean, true, true},
		{"file passthrough", nil, describe.KindFile, "/tmp/x.csv", "/tmp/x.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			desc := describe.New("x", "", "img").Input("v", "V", "", true, tt.kind, tt.spec)
			tk, _, _ := newTestTask(t, desc, rec)

			if _, err := tk.Invoke(context.Background(), Args{"v": tt.in}); err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			if !reflect.DeepEqual(rec.last["v"], tt.want) {
				t.Errorf("v = %#v, want %#v", rec.last["v"], tt.want)
			}
		})
	}
}

func TestInvoke_InvalidValue(t *testing.T) {
	tests := []struct {
		name string
		kind describe.Kind
		in   any
	}{
		{"integer", describe.KindInteger, "abc"},
		{"integer float string", describe.KindInteger, "2.5"},
		{"number", describe.KindNumber, "two"},
		{"boolean", describe.KindBoolean, "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			desc := describe.New("x", "", "img").Input("v", "V", "", true, tt.kind)
			tk, _, _ := newTestTask(t, desc, rec)

			_, err := tk.Invoke(context.Background(), Args{"v": tt.in})
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("Invoke() error = %v, want %v", err, ErrInvalidValue)
			}
			var pe *ParamError
			if !errors.As(err, &pe) || pe.ID != "v" || pe.Value != tt.in || pe.Expected != tt.kind {
				t.Errorf("ParamError = %+v", pe)
			}
			if rec.calls != 0 {
				t.Error("function was called despite a validation failure")
			}
		})
	}
}

func TestInvoke_EnumAfterCoercion(t *testing.T) {
	desc := describe.New("x", "", "img").
		Input("k", "K", "", true, describe.KindInteger, describe.WithValues(1, 2, 3))

	rec := &recorder{}
	tk, _, _ := newTestTask(t, desc, rec)

	if _, err := tk.Invoke(context.Background(), Args{"k": "2"}); err != nil {
		t.Fatalf("Invoke(k=2) error = %v", err)
	}
	if rec.last["k"] != 2 {
		t.Errorf("k = %#v, want int 2", rec.last["k"])
	}

	_, err := tk.Invoke(context.Background(), Args{"k": "5"})
	if !errors.Is(err, ErrInvalidEnumValue) {
		t.Fatalf("Invoke(k=5) error = %v, want %v", err, ErrInvalidEnumValue)
	}
	if !strings.Contains(err.Error(), "1, 2, 3") {
		t.Errorf("error %q does not list the allowed values", err)
	}
}

func TestInvoke_StringEnumeration(t *testing.T) {
	desc := describe.New("x", "", "img").
		Input("scaling", "Scaling", "", false, describe.KindStringEnum,
			describe.WithStringValues("none", "mean"), describe.WithDefault("none"))

	rec := &recorder{}
	tk, _, _ := newTestTask(t, desc, rec)

	if _, err := tk.Invoke(context.Background(), Args{"scaling": "mean"}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if _, err := tk.Invoke(context.Background(), Args{"scaling": "MEAN"}); !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("Invoke(MEAN) error = %v, want %v", err, ErrInvalidEnumValue)
	}
}

func TestInvoke_Dates(t *testing.T) {
	tests := []struct {
		name   string
		format string
		in     string
		hour   int
	}{
		{"date-time keeps time", describe.FormatDateTime, "2024-03-05T10:20:30Z", 10},
		{"date drops time", describe.FormatDate, "2024-03-05 10:20:30", 0},
		{"date only", describe.FormatDate, "2024-03-05", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			desc := describe.New("x", "", "img").
				Input("when", "When", "", true, describe.KindString,
					describe.WithStrip(), describe.WithFormat(tt.format))
			tk, _, _ := newTestTask(t, desc, rec)

			if _, err := tk.Invoke(context.Background(), Args{"when": " " + tt.in}); err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
			ts, ok := rec.last["when"].(time.Time)
			if !ok {
				t.Fatalf("when = %T, want time.Time", rec.last["when"])
			}
			y, m, d := ts.Date()
			if y != 2024 || m != time.March || d != 5 || ts.Hour() != tt.hour {
				t.Errorf("when = %v", ts)
			}
			if tt.format == describe.FormatDate && (ts.Minute() != 0 || ts.Second() != 0) {
				t.Errorf("date kept a time component: %v", ts)
			}
		})
	}
}

func TestInvoke_InvalidDate(t *testing.T) {
	rec := &recorder{}
	desc := describe.New("x", "", "img").
		Input("when", "When", "", true, describe.KindString, describe.WithFormat(describe.FormatDate))
	tk, _, _ := newTestTask(t, desc, rec)

	_, err := tk.Invoke(context.Background(), Args{"when": "not a date"})
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("Invoke() error = %v, want %v", err, ErrInvalidDateFormat)
	}
	if !strings.Contains(err.Error(), "when") || !strings.Contains(err.Error(), "not a date") {
		t.Errorf("error %q does not name the parameter and value", err)
	}
}

func TestInvoke_Positional(t *testing.T) {
	desc := describe.New("x", "", "img").
		Input("data", "Data", "", true, describe.KindFile).
		Input("num", "Num", "", false, describe.KindInteger, describe.WithDefault(3))

	t.Run("maps onto declared inputs", func(t *testing.T) {
		rec := &recorder{}
		tk, _, _ := newTestTask(t, desc, rec)
		table := []float64{1, 2}

		if _, err := tk.Invoke(context.Background(), nil, table, "5"); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if !reflect.DeepEqual(rec.last["data"], table) {
			t.Errorf("data = %#v, want the rich value untouched", rec.last["data"])
		}
		if rec.last["num"] != 5 {
			t.Errorf("num = %#v, want 5", rec.last["num"])
		}
	})

	t.Run("merged with keywords", func(t *testing.T) {
		rec := &recorder{}
		tk, _, _ := newTestTask(t, desc, rec)

		if _, err := tk.Invoke(context.Background(), Args{"num": 4, "extra": "kept"}, "table"); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if rec.last["data"] != "table" || rec.last["num"] != 4 || rec.last["extra"] != "kept" {
			t.Errorf("args = %#v", rec.last)
		}
	})

	t.Run("custom parameter names", func(t *testing.T) {
		rec := &recorder{}
		tk, _, _ := newTestTask(t, desc, rec, WithParams("num", "data"))

		if _, err := tk.Invoke(context.Background(), nil, "9", "table"); err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if rec.last["num"] != 9 || rec.last["data"] != "table" {
			t.Errorf("args = %#v", rec.last)
		}
	})

	t.Run("too many", func(t *testing.T) {
		tk, _, _ := newTestTask(t, desc, &recorder{})
		_, err := tk.Invoke(context.Background(), nil, 1, 2, 3)
		if !errors.Is(err, ErrTooManyArguments) {
			t.Errorf("Invoke() error = %v, want %v", err, ErrTooManyArguments)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		tk, _, _ := newTestTask(t, desc, &recorder{})
		_, err := tk.Invoke(context.Background(), Args{"data": "b"}, "a")
		if !errors.Is(err, ErrDuplicateArgument) {
			t.Errorf("Invoke() error = %v, want %v", err, ErrDuplicateArgument)
		}
	})
}

func TestInvoke_ReturnsResultUnchanged(t *testing.T) {
	want := Result{"a": 1, "b": 2}
	rec := &recorder{result: want}
	desc := describe.New("x", "", "img").
		Output("a", "A", "", describe.KindNewFile).
		Output("b", "B", "", describe.KindString)
	tk, stdout, _ := newTestTask(t, desc, rec)

	got, err := tk.Invoke(context.Background(), nil)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Invoke() = %v, want %v", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("direct call wrote to stdout: %q", stdout.String())
	}
}

func TestInvoke_FunctionError(t *testing.T) {
	boom := errors.New("boom")
	logs := &logRecorder{}
	rec := &recorder{err: boom}
	tk, _, _ := newTestTask(t, describe.New("x", "", "img"), rec, WithLogger(logs))

	if _, err := tk.Invoke(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("Invoke() error = %v, want %v", err, boom)
	}
	if len(logs.lines) != 2 {
		t.Errorf("logged %d lines, want 2", len(logs.lines))
	}
}

func TestInvoke_CanceledContext(t *testing.T) {
	rec := &recorder{}
	tk, _, _ := newTestTask(t, describe.New("x", "", "img"), rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tk.Invoke(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Invoke() error = %v, want %v", err, context.Canceled)
	}
	if rec.calls != 0 {
		t.Error("function was called with a canceled context")
	}
}

func combine(opts ...describe.InputOption) describe.InputOption {
	return func(s *describe.InputSpec) {
		for _, opt := range opts {
			opt(s)
		}
	}
}

func TestTask_With(t *testing.T) {
	rec := &recorder{result: 1}
	desc := describe.New("x", "", "img").Output("result", "Result", "", describe.KindString)
	tk, stdout, _ := newTestTask(t, desc, rec)

	var other strings.Builder
	copyTask := tk.With(WithStdout(&other), WithPullImage(false))

	if err := copyTask.RunCommandLine(context.Background(), []string{}); err != nil {
		t.Fatalf("RunCommandLine() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("original stdout received %q", stdout.String())
	}
	if !strings.Contains(other.String(), `"result": 1`) {
		t.Errorf("copy stdout = %q", other.String())
	}
	if !tk.Describe().PullImage || copyTask.Describe().PullImage {
		t.Error("With() changed the original task")
	}
}

func TestTask_WithDockerImage(t *testing.T) {
	desc := describe.New("x", "", "declared/img")
	tk, _, _ := newTestTask(t, desc, &recorder{})

	if got := tk.Describe().DockerImage; got != "declared/img" {
		t.Errorf("DockerImage = %q, want %q", got, "declared/img")
	}
	if got := tk.With(WithDockerImage("mirror/img")).Describe().DockerImage; got != "mirror/img" {
		t.Errorf("DockerImage = %q, want %q", got, "mirror/img")
	}
	if got := tk.With(WithDockerImage("")).Describe().DockerImage; got != "declared/img" {
		t.Errorf("empty override DockerImage = %q, want %q", got, "declared/img")
	}
}
