package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cleancut/internal/analysis"
	"cleancut/internal/config"
	"cleancut/internal/lexicon"
	"cleancut/internal/services"
	"cleancut/internal/subtitles"
	"cleancut/internal/timeline"
)

// ErrLocked reports that another process holds the store.
var ErrLocked = errors.New("analysis store is locked by another process")

// Store persists analysis results in SQLite. One process owns the database
// at a time; the owner holds an exclusive file lock next to it.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Summary is one stored analysis without its payload.
type Summary struct {
	ContentID      string       `json:"content_id"`
	Tier           lexicon.Tier `json:"level"`
	TotalEntries   int          `json:"total_entries"`
	ProfaneEntries int          `json:"profane_entries"`
	Level          string       `json:"profanity_level"`
	SavedAt        time.Time    `json:"saved_at"`
}

// Open opens the database configured in cfg.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.StorePath())
}

// OpenPath opens or creates the database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTransient, "store", "open", dbPath, ErrLocked)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// PRAGMAs are per connection; one connection keeps them in force and
	// serializes the concurrent saves AnalyzeTiers produces.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = fmt.Errorf("release store lock: %w", unlockErr)
		}
	}
	return err
}

// Save writes record, replacing any previous result for the same key.
func (s *Store) Save(ctx context.Context, record analysis.Record) error {
	if record.Result == nil {
		return errors.New("record has no result")
	}
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	savedAt := record.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}
	result := record.Result
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO analyses (
            content_id, tier, signature, original_srt, filtered_srt, result_json,
            total_entries, profane_entries, profanity_level, saved_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(content_id, tier) DO UPDATE SET
            signature = excluded.signature,
            original_srt = excluded.original_srt,
            filtered_srt = excluded.filtered_srt,
            result_json = excluded.result_json,
            total_entries = excluded.total_entries,
            profane_entries = excluded.profane_entries,
            profanity_level = excluded.profanity_level,
            saved_at = excluded.saved_at`,
		record.Key.ContentID,
		tierName(record.Key.Tier),
		record.Signature,
		subtitles.Serialize(result.Original),
		subtitles.Serialize(result.Filtered),
		string(payload),
		result.Stats.TotalEntries,
		result.Stats.ProfaneEntries,
		strings.ToLower(result.Stats.Level.String()),
		savedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save analysis: %w", err)
	}
	return nil
}

// Load returns the stored record for key or an error matching
// services.ErrNotFound.
func (s *Store) Load(ctx context.Context, key analysis.Key) (analysis.Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT signature, result_json, saved_at FROM analyses WHERE content_id = ? AND tier = ?`,
		key.ContentID,
		tierName(key.Tier),
	)
	var (
		signature string
		payload   string
		savedAt   string
	)
	if err := row.Scan(&signature, &payload, &savedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return analysis.Record{}, services.Wrap(services.ErrNotFound, "store", "load", key.String(), nil)
		}
		return analysis.Record{}, fmt.Errorf("load analysis: %w", err)
	}
	var result timeline.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return analysis.Record{}, services.Wrap(services.ErrParse, "store", "decode result", key.String(), err)
	}
	return analysis.Record{
		Key:       key,
		Signature: signature,
		Result:    &result,
		SavedAt:   parseTime(savedAt),
	}, nil
}

// Export returns the stored original and filtered SRT text for key.
func (s *Store) Export(ctx context.Context, key analysis.Key) (string, string, error) {
	var original, filtered string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT original_srt, filtered_srt FROM analyses WHERE content_id = ? AND tier = ?`,
		key.ContentID,
		tierName(key.Tier),
	).Scan(&original, &filtered)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", services.Wrap(services.ErrNotFound, "store", "export", key.String(), nil)
	}
	if err != nil {
		return "", "", fmt.Errorf("export analysis: %w", err)
	}
	return original, filtered, nil
}

// List returns summaries of every stored analysis, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT content_id, tier, total_entries, profane_entries, profanity_level, saved_at
         FROM analyses ORDER BY saved_at DESC, content_id, tier`,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			summary Summary
			tier    string
			savedAt string
		)
		if err := rows.Scan(&summary.ContentID, &tier, &summary.TotalEntries, &summary.ProfaneEntries, &summary.Level, &savedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		parsed, err := lexicon.ParseTier(tier)
		if err != nil {
			return nil, fmt.Errorf("stored tier %q: %w", tier, err)
		}
		summary.Tier = parsed
		summary.SavedAt = parseTime(savedAt)
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}

// Delete removes every tier stored for contentID and reports how many rows
// were removed.
func (s *Store) Delete(ctx context.Context, contentID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE content_id = ?`, contentID)
	if err != nil {
		return 0, fmt.Errorf("delete analysis: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes every stored analysis.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, fmt.Errorf("clear analyses: %w", err)
	}
	return res.RowsAffected()
}

func tierName(tier lexicon.Tier) string {
	return strings.ToLower(tier.String())
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
