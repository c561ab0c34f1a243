// Package analysis ties parsing, repair, filtering and timeline synthesis
// together and memoizes the result per content id and tier.
//
// The Analyzer guarantees at most one computation per key at a time:
// concurrent requests for the same key join a single flight and receive the
// same immutable *timeline.Result. Results for empty input are reported as
// ErrNoSubtitles and never cached, so a later retry can succeed. An optional
// Persister extends the cache across processes.
package analysis
