package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"cleancut/internal/profanity"
	"cleancut/internal/subtitles"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[1;33m"
	ansiDim    = "\x1b[2m"
)

// captionStyle renders replacement markers as ANSI highlights on a terminal
// and as brackets everywhere else.
type captionStyle struct {
	colorize bool
}

func newCaptionStyle(w io.Writer) captionStyle {
	return captionStyle{colorize: shouldColorize(w)}
}

func (s captionStyle) caption(text string) string {
	text = strings.ReplaceAll(text, "\n", " / ")
	if s.colorize {
		return profanity.HighlightMarkers(text, ansiYellow, ansiReset)
	}
	return profanity.HighlightMarkers(text, "[", "]")
}

func (s captionStyle) muted(label string) string {
	if s.colorize {
		return ansiRed + label + ansiReset
	}
	return label
}

func (s captionStyle) dim(label string) string {
	if s.colorize {
		return ansiDim + label + ansiReset
	}
	return label
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatRange(r subtitles.TimeRange) string {
	return fmt.Sprintf("%s --> %s", subtitles.FormatTimestamp(r.StartMS), subtitles.FormatTimestamp(r.EndMS))
}

func formatMillis(ms int64) string {
	return fmt.Sprintf("%.3fs", float64(ms)/1000)
}
