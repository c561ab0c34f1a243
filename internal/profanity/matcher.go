package profanity

import (
	"sort"
	"strings"
	"sync"

	"cleancut/internal/lexicon"
)

// Match is one accepted occurrence of a canonical word. Offsets are bytes.
type Match struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Word  string `json:"word"`
}

// Detection lists every canonical word found in a text, in order of first
// occurrence, plus the matches that count as separate occurrences. A match
// nested inside a longer one contributes its word but not a match.
type Detection struct {
	Words   []string `json:"words,omitempty"`
	Matches []Match  `json:"matches,omitempty"`
}

// Found reports whether at least one match survived.
func (d Detection) Found() bool {
	return len(d.Matches) > 0
}

// Counts returns the number of matches per canonical word.
func (d Detection) Counts() map[string]int {
	counts := make(map[string]int, len(d.Words))
	for _, match := range d.Matches {
		counts[match.Word]++
	}
	return counts
}

// Matcher detects and rewrites profanity against an immutable lexicon.
// It is safe for concurrent use.
type Matcher struct {
	lex *lexicon.Lexicon

	// compiled custom words keyed by normalized form
	custom sync.Map
}

// NewMatcher builds a matcher over lex.
func NewMatcher(lex *lexicon.Lexicon) *Matcher {
	return &Matcher{lex: lex}
}

// Lexicon returns the lexicon the matcher was built with.
func (m *Matcher) Lexicon() *lexicon.Lexicon {
	return m.lex
}

// Detect scans text against every predefined word plus the overlay's custom
// words. The result does not depend on the filtering tier, so statistics stay
// stable when the tier changes.
func (m *Matcher) Detect(text string, overlay Overlay) Detection {
	if strings.TrimSpace(text) == "" {
		return Detection{}
	}
	var matches []Match
	for _, word := range m.candidates(lexicon.TierStrict, overlay) {
		for _, span := range word.FindAll(text) {
			if m.suppressed(text, span, word, overlay) {
				continue
			}
			matches = append(matches, Match{Start: span.Start, End: span.End, Word: word.Canonical})
		}
	}
	if len(matches) == 0 {
		return Detection{}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End-matches[i].Start > matches[j].End-matches[j].Start
	})
	// Every surviving word is listed so the rewrite pass can still replace a
	// nested word when the longer one is not active at the filtering tier.
	seen := make(map[string]struct{}, len(matches))
	words := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, dup := seen[match.Word]; dup {
			continue
		}
		seen[match.Word] = struct{}{}
		words = append(words, match.Word)
	}
	// A match nested inside a longer one ("fuck" inside "fucking") is the
	// same occurrence and is not counted twice.
	kept := make([]Match, 0, len(matches))
	maxEnd := -1
	for _, match := range matches {
		if match.End <= maxEnd {
			continue
		}
		kept = append(kept, match)
		maxEnd = match.End
	}
	return Detection{Words: words, Matches: kept}
}

// candidates returns the predefined words at or below tier plus custom words,
// minus the whitelist, longest canonical first. A custom word shadows a
// predefined word with the same spelling.
func (m *Matcher) candidates(tier lexicon.Tier, overlay Overlay) []*lexicon.Word {
	words := make([]*lexicon.Word, 0, m.lex.Size()+len(overlay.custom))
	for _, word := range m.lex.Words(tier) {
		if overlay.Whitelisted(word.Canonical) || overlay.isCustom(word.Canonical) {
			continue
		}
		words = append(words, word)
	}
	for _, canonical := range overlay.custom {
		if overlay.Whitelisted(canonical) {
			continue
		}
		if word := m.customWord(canonical); word != nil {
			words = append(words, word)
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i].Canonical) > len(words[j].Canonical)
	})
	return words
}

func (m *Matcher) customWord(canonical string) *lexicon.Word {
	if cached, ok := m.custom.Load(canonical); ok {
		return cached.(*lexicon.Word)
	}
	word, err := lexicon.NewCustomWord(canonical, m.lex.Placeholder())
	if err != nil {
		return nil
	}
	actual, _ := m.custom.LoadOrStore(canonical, word)
	return actual.(*lexicon.Word)
}

// suppressed drops a flexible match whose enclosing letter run is itself a
// whitelisted word, so whitelisting "fucking" is not undone by "fuck".
func (m *Matcher) suppressed(text string, span lexicon.Span, word *lexicon.Word, overlay Overlay) bool {
	if !word.Flexible || len(overlay.whitelist) == 0 {
		return false
	}
	start, end := lexicon.EnclosingRun(text, span.Start, span.End)
	return overlay.Whitelisted(strings.ToLower(text[start:end]))
}
