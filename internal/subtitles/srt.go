package subtitles

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"cleancut/internal/services"
)

var (
	timingPattern = regexp.MustCompile(`^(\d+:\d+:\d+[,.]\d+)\s*-->\s*(\d+:\d+:\d+[,.]\d+)`)
	// timingShape is what a timing line looks like even when its fields are
	// malformed. Inside a block only lines of this shape start a new one.
	timingShape = regexp.MustCompile(`^\d+:\d+\S*\s*-->`)
)

// ParseStats reports what the parser discarded.
type ParseStats struct {
	Blocks        int
	SkippedBlocks int
	EmptyBlocks   int
}

// Parse reads SRT text into an ordered entry sequence. Blocks with a malformed
// timestamp line are skipped; blocks whose cleaned text is empty are dropped.
func Parse(text string) ParsedSubtitle {
	parsed, _ := ParseWithStats(text)
	return parsed
}

// ParseWithStats is Parse plus counters for skipped and empty blocks.
func ParseWithStats(text string) (ParsedSubtitle, ParseStats) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimPrefix(normalized, "\ufeff")

	var (
		stats    ParseStats
		entries  []Entry
		current  *pendingEntry
		index    int
		skipping bool
	)

	flush := func() {
		if current == nil {
			return
		}
		cleaned := CleanText(strings.Join(current.lines, "\n"))
		if cleaned == "" {
			stats.EmptyBlocks++
		} else {
			entries = append(entries, Entry{
				Index:        current.index,
				StartMS:      current.start,
				EndMS:        current.end,
				OriginalText: cleaned,
			})
		}
		current = nil
	}

	for _, line := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			index = 0
			skipping = false
			continue
		}
		if isTimingLine(trimmed, current != nil || skipping) {
			// A timing line without a preceding blank line still opens a new
			// block; a trailing bare integer belongs to the new block.
			if current != nil && len(current.lines) > 0 && isNumeric(current.lines[len(current.lines)-1]) {
				index, _ = strconv.Atoi(strings.TrimSpace(current.lines[len(current.lines)-1]))
				current.lines = current.lines[:len(current.lines)-1]
			}
			flush()
			stats.Blocks++
			start, end, err := parseTimingLine(trimmed)
			if err != nil {
				stats.SkippedBlocks++
				skipping = true
				index = 0
				continue
			}
			skipping = false
			current = &pendingEntry{index: index, start: start, end: end}
			index = 0
			continue
		}
		if skipping {
			continue
		}
		if current == nil {
			if isNumeric(trimmed) {
				index, _ = strconv.Atoi(trimmed)
			}
			continue
		}
		current.lines = append(current.lines, trimmed)
	}
	flush()

	return ParsedSubtitle{Entries: entries}, stats
}

// ParseFile reads and parses an SRT file from disk.
func ParseFile(path string) (ParsedSubtitle, ParseStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParsedSubtitle{}, ParseStats{}, services.Wrap(services.ErrNotFound, "subtitles", "read srt", path, err)
	}
	parsed, stats := ParseWithStats(string(data))
	return parsed, stats, nil
}

// isTimingLine reports whether line opens a block. Between blocks any line
// with an arrow does; inside a block the line must look like a timestamp pair,
// so caption text such as "left --> right" stays text.
func isTimingLine(line string, inBlock bool) bool {
	if !strings.Contains(line, "-->") {
		return false
	}
	return !inBlock || timingShape.MatchString(line)
}

type pendingEntry struct {
	index int
	start int64
	end   int64
	lines []string
}

func parseTimingLine(line string) (int64, int64, error) {
	match := timingPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, 0, services.Wrap(services.ErrParse, "subtitles", "parse timing", fmt.Sprintf("invalid timing line %q", line), nil)
	}
	start, err := ParseTimestamp(match[1])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(match[2])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp converts HH:MM:SS,mmm (or HH:MM:SS.mmm) into milliseconds.
// The fractional part is padded or truncated to exactly three digits.
func ParseTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, services.Wrap(services.ErrParse, "subtitles", "parse timestamp", "empty timestamp", nil)
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, services.Wrap(services.ErrParse, "subtitles", "parse timestamp", fmt.Sprintf("invalid timestamp %q", value), nil)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, services.Wrap(services.ErrParse, "subtitles", "parse timestamp", fmt.Sprintf("invalid timestamp %q", value), nil)
	}
	frac := timeParts[1]
	switch {
	case len(frac) > 3:
		frac = frac[:3]
	case len(frac) < 3:
		frac += strings.Repeat("0", 3-len(frac))
	}
	hours, errH := strconv.ParseInt(hms[0], 10, 64)
	minutes, errM := strconv.ParseInt(hms[1], 10, 64)
	seconds, errS := strconv.ParseInt(hms[2], 10, 64)
	millis, errMS := strconv.ParseInt(frac, 10, 64)
	if errH != nil || errM != nil || errS != nil || errMS != nil || hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, services.Wrap(services.ErrParse, "subtitles", "parse timestamp", fmt.Sprintf("invalid timestamp %q", value), nil)
	}
	return (hours*3600+minutes*60+seconds)*1000 + millis, nil
}

// FormatTimestamp renders milliseconds as HH:MM:SS,mmm. Negative values clamp
// to zero.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// Serialize renders the document as SRT, renumbering entries from 1. Filtered
// entries are written with their rewritten text.
func Serialize(parsed ParsedSubtitle) string {
	if len(parsed.Entries) == 0 {
		return ""
	}
	var b strings.Builder
	for i, entry := range parsed.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n",
			i+1,
			FormatTimestamp(entry.StartMS),
			FormatTimestamp(entry.EndMS),
			entry.DisplayText(),
		)
	}
	return b.String()
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
