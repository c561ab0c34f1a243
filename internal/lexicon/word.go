package lexicon

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"cleancut/internal/services"
)

// Word is one compiled lexicon entry.
type Word struct {
	Canonical   string
	Replacement string
	Tier        Tier
	Flexible    bool
	Custom      bool
	Exceptions  []string

	pattern *regexp.Regexp
}

// Span is a byte range [Start, End) in the scanned text.
type Span struct {
	Start int
	End   int
}

func newWord(canonical, replacement string, tier Tier, flexible bool, exceptions []string) (*Word, error) {
	pattern, err := compilePattern(canonical)
	if err != nil {
		return nil, err
	}
	lowered := make([]string, 0, len(exceptions))
	for _, exc := range exceptions {
		if exc = strings.ToLower(strings.TrimSpace(exc)); exc != "" {
			lowered = append(lowered, exc)
		}
	}
	return &Word{
		Canonical:   canonical,
		Replacement: replacement,
		Tier:        tier,
		Flexible:    flexible,
		Exceptions:  lowered,
		pattern:     pattern,
	}, nil
}

// NewCustomWord compiles a caller-supplied word. Custom words always use
// whole-word matching and resolve to placeholder.
func NewCustomWord(word, placeholder string) (*Word, error) {
	canonical := NormalizeWord(word)
	if canonical == "" {
		return nil, services.Wrap(services.ErrValidation, "lexicon", "custom word", "empty custom word", nil)
	}
	compiled, err := newWord(canonical, placeholder, TierNone, false, nil)
	if err != nil {
		return nil, err
	}
	compiled.Custom = true
	return compiled, nil
}

// NormalizeWord lowercases a word and collapses inner whitespace.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.Join(strings.Fields(word), " "))
}

func compilePattern(canonical string) (*regexp.Regexp, error) {
	tokens := strings.Fields(canonical)
	if len(tokens) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "lexicon", "compile", "empty word", nil)
	}
	quoted := make([]string, len(tokens))
	for i, token := range tokens {
		quoted[i] = regexp.QuoteMeta(token)
	}
	pattern, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "lexicon", "compile", fmt.Sprintf("word %q", canonical), err)
	}
	return pattern, nil
}

// FindAll returns every occurrence of the word in text, in order.
// Flexible words match anywhere but are dropped when the enclosing letter run
// contains one of the word's exceptions; other words only match when bounded
// by non-letters on both sides.
func (w *Word) FindAll(text string) []Span {
	var spans []Span
	pos := 0
	for pos <= len(text) {
		loc := w.pattern.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if w.Accepts(text, start, end) {
			spans = append(spans, Span{Start: start, End: end})
			pos = end
			continue
		}
		// Retry one rune later so an overlapping occurrence is not skipped.
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return spans
}

// Accepts reports whether the occurrence at [start, end) survives the word's
// boundary or exception rules.
func (w *Word) Accepts(text string, start, end int) bool {
	if w.Flexible {
		return !w.isException(text, start, end)
	}
	return isBoundary(text, start, end)
}

func (w *Word) isException(text string, start, end int) bool {
	if len(w.Exceptions) == 0 {
		return false
	}
	runStart, runEnd := EnclosingRun(text, start, end)
	run := strings.ToLower(text[runStart:runEnd])
	for _, exc := range w.Exceptions {
		if strings.Contains(run, exc) {
			return true
		}
	}
	return false
}

func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// EnclosingRun expands [start, end) outward to the maximal run of letters.
func EnclosingRun(text string, start, end int) (int, int) {
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !unicode.IsLetter(r) {
			break
		}
		start -= size
	}
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !unicode.IsLetter(r) {
			break
		}
		end += size
	}
	return start, end
}
