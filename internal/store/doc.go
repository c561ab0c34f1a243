// Package store persists analysis results in a SQLite database so a cold
// process can reuse work from an earlier run.
//
// Each row holds the serialized original and filtered SRT plus the full result
// as JSON, keyed by content id and tier, along with the input signature the
// analyzer uses to reject stale rows. Store implements analysis.Persister.
//
// Only one process may open the database at a time: Open takes an exclusive
// flock on "<db>.lock" and fails with ErrLocked when another process holds it.
// Schema changes bump schemaVersion; there are no in-place migrations.
package store
