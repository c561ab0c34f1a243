package profanity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cleancut/internal/lexicon"
)

// Rewritten is the output of a rewrite pass.
type Rewritten struct {
	Text         string `json:"text"`
	HasProfanity bool   `json:"has_profanity"`
}

// Result is a detection plus the rewrite it drove.
type Result struct {
	Rewritten
	Detection Detection `json:"detection"`
}

// Rewrite replaces the detected words that are active at tier. At TierNone only
// custom words are replaced. Words are processed longest first and text that
// is already inside replacement markers is never touched again. HasProfanity
// reflects detection, not whether anything was rewritten.
func (m *Matcher) Rewrite(text string, tier lexicon.Tier, detected []string, overlay Overlay) Rewritten {
	out := Rewritten{Text: text, HasProfanity: len(detected) > 0}
	if len(detected) == 0 {
		return out
	}
	wanted := make(map[string]struct{}, len(detected))
	for _, word := range detected {
		wanted[word] = struct{}{}
	}

	activeTier := tier
	if !tier.Filters() {
		activeTier = lexicon.TierNone
	}
	upper := cases.Upper(language.Und)
	for _, word := range m.candidates(activeTier, overlay) {
		if _, ok := wanted[word.Canonical]; !ok {
			continue
		}
		out.Text = m.replaceWord(out.Text, word, overlay, upper)
	}
	return out
}

// Filter detects and rewrites in one call.
func (m *Matcher) Filter(text string, tier lexicon.Tier, overlay Overlay) Result {
	detection := m.Detect(text, overlay)
	return Result{
		Rewritten: m.Rewrite(text, tier, detection.Words, overlay),
		Detection: detection,
	}
}

func (m *Matcher) replaceWord(text string, word *lexicon.Word, overlay Overlay, upper cases.Caser) string {
	spans := word.FindAll(text)
	if len(spans) == 0 {
		return text
	}
	protected := markedSpans(text)
	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(word.Replacement)+len(MarkerOpen)+len(MarkerClose)))
	last := 0
	for _, span := range spans {
		if overlapsAny(protected, span.Start, span.End) || m.suppressed(text, span, word, overlay) {
			continue
		}
		b.WriteString(text[last:span.Start])
		b.WriteString(MarkerOpen)
		b.WriteString(matchCase(text[span.Start:span.End], word.Replacement, upper))
		b.WriteString(MarkerClose)
		last = span.End
	}
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// matchCase applies the capitalization pattern of original to replacement:
// all caps stays all caps, a leading capital stays a leading capital.
func matchCase(original, replacement string, upper cases.Caser) string {
	if replacement == "" {
		return replacement
	}
	if utf8.RuneCountInString(original) > 1 && isAllUpper(original) {
		return upper.String(replacement)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		head, size := utf8.DecodeRuneInString(replacement)
		return upper.String(string(head)) + replacement[size:]
	}
	return replacement
}

func isAllUpper(value string) bool {
	letters := 0
	for _, r := range value {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters > 0
}
