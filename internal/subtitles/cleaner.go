package subtitles

import (
	"regexp"
	"strings"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	bracePattern   = regexp.MustCompile(`\{[^}]*\}`)
	// Stacked labels are removed together; stripping one per pass would let a
	// second cleaning change the text again.
	speakerPattern = regexp.MustCompile(`^(?:\s*\[[^\]]*\])+\s*`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// CleanText strips markup tags, brace overrides and leading speaker labels from
// caption text, joins lines with a single space and collapses whitespace.
// Applying it to already clean text is a no-op.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = tagPattern.ReplaceAllString(text, "")
	text = bracePattern.ReplaceAllString(text, "")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = speakerPattern.ReplaceAllString(strings.TrimSpace(line), "")
		if line != "" {
			kept = append(kept, line)
		}
	}
	joined := strings.Join(kept, " ")
	joined = speakerPattern.ReplaceAllString(joined, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(joined, " "))
}

// IsAdvertisement reports whether caption text is a release-group or
// provider credit rather than dialogue.
func IsAdvertisement(text string) bool {
	payload := strings.TrimSpace(strings.ToLower(text))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

// DropAdvertisements removes advertisement entries and reports how many were
// removed. The input slice is not modified.
func DropAdvertisements(entries []Entry) ([]Entry, int) {
	out := make([]Entry, 0, len(entries))
	removed := 0
	for _, entry := range entries {
		if IsAdvertisement(entry.OriginalText) {
			removed++
			continue
		}
		out = append(out, entry)
	}
	return out, removed
}
