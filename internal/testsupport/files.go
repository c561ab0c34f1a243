package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cleancut/internal/subtitles"
)

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Caption is one cue for BuildSRT.
type Caption struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// BuildSRT renders captions as SRT text numbered from 1.
func BuildSRT(captions ...Caption) string {
	entries := make([]subtitles.Entry, 0, len(captions))
	for i, c := range captions {
		entries = append(entries, subtitles.Entry{
			Index:        i + 1,
			StartMS:      c.StartMS,
			EndMS:        c.EndMS,
			OriginalText: strings.TrimSpace(c.Text),
		})
	}
	return subtitles.Serialize(subtitles.ParsedSubtitle{Entries: entries})
}

// WriteSRT writes captions as an SRT file in a fresh temp directory and
// returns its path.
func WriteSRT(t testing.TB, name string, captions ...Caption) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	WriteText(t, path, BuildSRT(captions...))
	return path
}
