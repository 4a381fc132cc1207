package observability

import (
	"go.uber.org/zap"
)

// TaskLogger adapts a zap logger to task.Logger. Messages are logged at
// debug level so invocation tracing stays quiet unless asked for.
type TaskLogger struct {
	sugar *zap.SugaredLogger
}

// NewTaskLogger wraps l. A nil l uses the global logger.
func NewTaskLogger(l *zap.Logger) *TaskLogger {
	if l == nil {
		l = zap.L()
	}
	return &TaskLogger{sugar: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// Logf logs a formatted message.
func (t *TaskLogger) Logf(format string, args ...any) {
	t.sugar.Debugf(format, args...)
}
