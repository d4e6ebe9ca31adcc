package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/doeshing/dicelog/internal/ports"
)

// StdLogger routes ports.Logger calls to a slog text handler.
type StdLogger struct {
	logger    *slog.Logger
	component string
}

// NewStd creates a StdLogger writing to stderr. Verbose enables debug output;
// otherwise only warnings and errors are shown.
func NewStd(verbose bool) *StdLogger {
	return New(os.Stderr, verbose)
}

// New creates a StdLogger writing to w.
func New(w io.Writer, verbose bool) *StdLogger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &StdLogger{logger: slog.New(handler), component: "app"}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *StdLogger {
	return &StdLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), component: "app"}
}

// WithComponent returns a copy tagging every record with component.
func (l *StdLogger) WithComponent(component string) *StdLogger {
	return &StdLogger{logger: l.logger, component: component}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	attrs := l.attrs(fields)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

func (l *StdLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.LogAttrs(ctx, level, msg, l.attrs(fields)...)
}

// attrs flattens fields in key order so output is stable.
func (l *StdLogger) attrs(fields map[string]interface{}) []slog.Attr {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys)+1)
	attrs = append(attrs, slog.String("component", l.component))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

var _ ports.Logger = (*StdLogger)(nil)
