package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

var lower = cases.Lower(language.Und)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeToken converts a title to a lowercase content id token. Letters
// and digits are kept, hyphens survive, and every other run of characters
// collapses to a single underscore. Returns "unknown" for empty input.
func SanitizeToken(value string) string {
	value = lower.String(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	pendingSep := false
	for _, r := range value {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '-':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '\'':
			// "don't" -> "dont"
		default:
			pendingSep = true
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}

// ExportName builds the file name for an exported subtitle variant, placing
// label between the source stem and the .srt extension:
// "Movie (2020).en.srt" with label "filtered" becomes "Movie (2020).en.filtered.srt".
func ExportName(source, label string) string {
	base := SanitizeFileName(filepath.Base(source))
	if base == "" || base == "." {
		base = "subtitles"
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	label = SanitizeToken(label)
	return stem + "." + label + ".srt"
}
