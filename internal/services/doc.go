// Package services defines shared utilities consumed by the analysis engine,
// the persistence layer, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp content IDs, filter levels, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that let callers decide
//     between a hard failure and degraded (unfiltered) playback.
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform across the engine.
package services
