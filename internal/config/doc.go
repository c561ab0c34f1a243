// Package config loads, normalizes, and validates cleancut configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CLEANCUT_LEVEL environment
// fallback. The Config type centralizes the filter profile (level, custom
// words, whitelist), re-sync timing, severity thresholds, and persistence
// settings so the CLI and analysis engine discover everything in one pass.
package config
