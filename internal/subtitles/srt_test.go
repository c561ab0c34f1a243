package subtitles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cleancut/internal/services"
)

const sampleSRT = "1\r\n00:00:01,000 --> 00:00:03,000\r\n<i>Hello</i> there\r\n\r\n" +
	"2\r\n00:00:04.5 --> 00:00:06,1234\r\n[JOHN] Where are\r\nyou going?\r\n\r\n" +
	"3\r\n00:00:07,000 --> 00:00:08,000\r\n{\\an8}<b></b>\r\n\r\n"

func TestParseBasicBlocks(t *testing.T) {
	parsed, stats := ParseWithStats(sampleSRT)
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Entries))
	}
	if stats.EmptyBlocks != 1 {
		t.Fatalf("expected 1 empty block, got %d", stats.EmptyBlocks)
	}
	first := parsed.Entries[0]
	if first.Index != 1 || first.StartMS != 1000 || first.EndMS != 3000 || first.OriginalText != "Hello there" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	second := parsed.Entries[1]
	if second.StartMS != 4500 || second.EndMS != 6123 {
		t.Fatalf("unexpected second timing: %d-%d", second.StartMS, second.EndMS)
	}
	if second.OriginalText != "Where are you going?" {
		t.Fatalf("unexpected second text %q", second.OriginalText)
	}
}

func TestParseSkipsMalformedTiming(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nKeep me\n\n" +
		"2\n00:00:xx,000 --> 00:00:04,000\nDrop me\n\n" +
		"3\n00:00:05,000 --> 00:00:06,000\nKeep me too\n"
	parsed, stats := ParseWithStats(input)
	if stats.SkippedBlocks != 1 {
		t.Fatalf("expected 1 skipped block, got %d", stats.SkippedBlocks)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Entries))
	}
	if parsed.Entries[1].OriginalText != "Keep me too" {
		t.Fatalf("unexpected text %q", parsed.Entries[1].OriginalText)
	}
}

func TestParseKeepsArrowsInCaptionText(t *testing.T) {
	input := "1\n00:00:05,000 --> 00:00:06,000\nTurn left --> then right\n\n" +
		"2\n00:00:07,000 --> 00:00:08,000\nOk\nA --> B\n"
	parsed, stats := ParseWithStats(input)
	if stats != (ParseStats{Blocks: 2}) {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Entries))
	}
	if parsed.Entries[0].OriginalText != "Turn left --> then right" {
		t.Fatalf("unexpected first text %q", parsed.Entries[0].OriginalText)
	}
	if parsed.Entries[1].OriginalText != "Ok\nA --> B" {
		t.Fatalf("unexpected second text %q", parsed.Entries[1].OriginalText)
	}
}

func TestParseWithoutBlankSeparators(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nFirst\n2\n00:00:03,000 --> 00:00:04,000\nSecond\n"
	parsed := Parse(input)
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(parsed.Entries))
	}
	if parsed.Entries[0].OriginalText != "First" || parsed.Entries[1].Index != 2 {
		t.Fatalf("unexpected entries: %+v", parsed.Entries)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\n", "not a subtitle file"} {
		if got := Parse(input); len(got.Entries) != 0 {
			t.Fatalf("expected no entries for %q, got %d", input, len(got.Entries))
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"00:00:00,000", 0},
		{"01:02:03,456", 3723456},
		{"00:00:01.5", 1500},
		{"00:00:01,05", 1050},
		{"00:00:01,123456", 1123},
		{"10:00:00,000", 36000000},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTimestamp(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "00:00:01", "00:01,000", "aa:00:01,000"} {
		_, err := ParseTimestamp(bad)
		if err == nil {
			t.Fatalf("expected error for %q", bad)
		}
		if !errors.Is(err, services.ErrParse) {
			t.Fatalf("expected parse marker for %q, got %v", bad, err)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(3723456); got != "01:02:03,456" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatTimestamp(-5); got != "00:00:00,000" {
		t.Fatalf("negative timestamps should clamp, got %q", got)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	parsed := Parse(sampleSRT)
	out := Serialize(parsed)
	again := Parse(out)
	if len(again.Entries) != len(parsed.Entries) {
		t.Fatalf("round trip changed count: %d vs %d", len(again.Entries), len(parsed.Entries))
	}
	for i := range parsed.Entries {
		a, b := parsed.Entries[i], again.Entries[i]
		if a.StartMS != b.StartMS || a.EndMS != b.EndMS || a.OriginalText != b.OriginalText {
			t.Fatalf("entry %d differs after round trip: %+v vs %+v", i, a, b)
		}
		if b.Index != i+1 {
			t.Fatalf("expected renumbered index %d, got %d", i+1, b.Index)
		}
	}
}

func TestSerializeWritesFilteredText(t *testing.T) {
	parsed := ParsedSubtitle{Entries: []Entry{
		{StartMS: 0, EndMS: 1000, OriginalText: "raw", FilteredText: "clean", Filtered: true},
		{StartMS: 2000, EndMS: 3000, OriginalText: "untouched"},
	}}
	want := "1\n00:00:00,000 --> 00:00:01,000\nclean\n\n2\n00:00:02,000 --> 00:00:03,000\nuntouched\n"
	if got := Serialize(parsed); got != want {
		t.Fatalf("unexpected serialization:\n%s", got)
	}
	if Serialize(ParsedSubtitle{}) != "" {
		t.Fatalf("expected empty output for empty document")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	parsed, stats, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(parsed.Entries) != 2 || stats.Blocks != 3 {
		t.Fatalf("unexpected parse result: %d entries, %+v", len(parsed.Entries), stats)
	}
	if _, _, err := ParseFile(filepath.Join(dir, "missing.srt")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
}

func TestTimeRangeContains(t *testing.T) {
	r := TimeRange{StartMS: 1000, EndMS: 3000}
	for pos, want := range map[int64]bool{999: false, 1000: true, 3000: true, 3001: false} {
		if got := r.Contains(pos); got != want {
			t.Fatalf("Contains(%d) = %v, want %v", pos, got, want)
		}
	}
}
