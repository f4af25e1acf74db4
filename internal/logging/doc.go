// Package logging assembles structured slog loggers used across cuemill.
//
// It owns the configurable pretty/JSON handlers and centralizes level and
// output plumbing. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits log lines with the same shape.
package logging
