package task

import (
	"bytes"
	"context"
	"testing"

	"github.com/jonwraymond/sciencedock/describe"
)

// recorder captures the arguments of each call to a wrapped function.
type recorder struct {
	calls  int
	last   Args
	result any
	err    error
}

func (r *recorder) fn(_ context.Context, args Args) (any, error) {
	r.calls++
	r.last = args
	return r.result, r.err
}

// newTestTask builds a task writing to in-memory buffers.
func newTestTask(t *testing.T, desc *describe.Description, rec *recorder, opts ...Option) (*Task, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	opts = append([]Option{WithStdout(&stdout), WithStderr(&stderr)}, opts...)
	tk, err := New("test_task", desc, rec.fn, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tk, &stdout, &stderr
}

type logRecorder struct {
	lines []string
}

func (l *logRecorder) Logf(format string, _ ...any) {
	l.lines = append(l.lines, format)
}
