package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

// Attribute keys shared across the pipeline so log lines stay greppable.
const (
	FieldComponent   = "component"
	FieldObservation = "observation"
	FieldFilter      = "filter"
	FieldExtension   = "extension"
	FieldTStart      = "tstart"
)

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Observation tags a log line with the 11-character observation folder name.
func Observation(obs string) Attr { return slog.String(FieldObservation, obs) }

// Filter tags a log line with the instrument band code.
func Filter(filt string) Attr { return slog.String(FieldFilter, filt) }

// Extension tags a log line with a stack extension index.
func Extension(ext int) Attr { return slog.Int(FieldExtension, ext) }

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
