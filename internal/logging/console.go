package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders records as single human-readable lines:
//
//	15:04:05 WARN  driver · 00032766002 (w2) no scattered light template
//
// Component, observation, filter, and extension attributes form the subject;
// everything else is appended as key=value pairs.
type consoleHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &consoleHandler{writer: w, level: lvl}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	attrs := make([]slog.Attr, 0, record.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)
		return true
	})

	var component, observation, filter, extension string
	rest := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		switch attr.Key {
		case FieldComponent:
			component = attr.Value.String()
		case FieldObservation:
			observation = attr.Value.String()
		case FieldFilter:
			filter = attr.Value.String()
		case FieldExtension:
			extension = attr.Value.String()
		default:
			rest = append(rest, attr)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Key < rest[j].Key })

	var b strings.Builder
	b.WriteString(timestamp.Format("15:04:05"))
	fmt.Fprintf(&b, " %-5s", record.Level.String())
	if component != "" {
		b.WriteString(" ")
		b.WriteString(component)
	}
	if subject := formatSubject(observation, filter, extension); subject != "" {
		b.WriteString(" · ")
		b.WriteString(subject)
	}
	b.WriteString(" ")
	b.WriteString(record.Message)
	for _, attr := range rest {
		fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
	}
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &consoleHandler{writer: h.writer, level: h.level}
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return clone
}

func (h *consoleHandler) WithGroup(string) slog.Handler { return h }

func formatSubject(observation, filter, extension string) string {
	parts := make([]string, 0, 2)
	if observation != "" {
		if filter != "" {
			parts = append(parts, observation+" ("+filter+")")
		} else {
			parts = append(parts, observation)
		}
	} else if filter != "" {
		parts = append(parts, filter)
	}
	if extension != "" {
		parts = append(parts, "ext "+extension)
	}
	return strings.Join(parts, " · ")
}
