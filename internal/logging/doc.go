// Package logging assembles the structured slog loggers used across
// subscan.
//
// It owns the console and JSON handlers and centralizes level plumbing so
// every component emits log lines with the same shape. Prefer these
// constructors over hand-rolled slog setup; NewNop exists for tests and
// wiring code that cannot fail.
package logging
