// Package lexicon holds the tiered profanity word tables.
//
// A Lexicon is built once from YAML (the embedded default or a user file),
// validated, and compiled: every word carries its own case-insensitive pattern
// so matching never compiles regular expressions on the hot path. Tiers are
// cumulative. A small flexible set matches as raw substrings and relies on
// per-word exception lists to suppress known false positives; every other word
// matches only between non-letters.
//
// The value is immutable after construction. Per-request overlays such as
// custom words and whitelists are passed to the matcher, never stored here.
package lexicon
