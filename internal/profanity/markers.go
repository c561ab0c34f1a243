package profanity

import "strings"

// Replacement text is wrapped in zero-width markers so renderers can find or
// restyle it without scanning again.
const (
	MarkerOpen  = "\u200B"
	MarkerClose = "\u200C"
)

var stripper = strings.NewReplacer(MarkerOpen, "", MarkerClose, "")

// StripMarkers removes every replacement marker from text.
func StripMarkers(text string) string {
	return stripper.Replace(text)
}

// HighlightMarkers swaps the markers for visible delimiters, for example ANSI
// escape sequences in a terminal.
func HighlightMarkers(text, open, closing string) string {
	return strings.NewReplacer(MarkerOpen, open, MarkerClose, closing).Replace(text)
}

// markedSpans returns the byte ranges enclosed by marker pairs, markers
// included. An unterminated open marker protects the rest of the text.
func markedSpans(text string) [][2]int {
	var spans [][2]int
	pos := 0
	for {
		open := strings.Index(text[pos:], MarkerOpen)
		if open < 0 {
			return spans
		}
		start := pos + open
		closeAt := strings.Index(text[start:], MarkerClose)
		if closeAt < 0 {
			return append(spans, [2]int{start, len(text)})
		}
		end := start + closeAt + len(MarkerClose)
		spans = append(spans, [2]int{start, end})
		pos = end
	}
}

func overlapsAny(spans [][2]int, start, end int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
