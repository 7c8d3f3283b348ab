// Package logging assembles the structured slog loggers used across the
// uvotsl CLI and pipeline.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attribute helpers so pipeline code tags every line with the
// observation, filter, and extension it is working on. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
