// Package logging assembles structured slog loggers and formatting helpers used
// across cleancut components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so analysis code can tag log
// lines with content IDs, filter levels, and correlation IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
