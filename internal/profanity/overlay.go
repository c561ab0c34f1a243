package profanity

import (
	"slices"

	"cleancut/internal/lexicon"
)

// Overlay carries the per-request word lists: custom words are always
// filtered, whitelisted words are never filtered.
type Overlay struct {
	custom    []string
	whitelist map[string]struct{}
}

// NewOverlay normalizes and de-duplicates the caller's word lists.
func NewOverlay(custom, whitelist []string) Overlay {
	overlay := Overlay{whitelist: make(map[string]struct{}, len(whitelist))}
	for _, word := range whitelist {
		if normalized := lexicon.NormalizeWord(word); normalized != "" {
			overlay.whitelist[normalized] = struct{}{}
		}
	}
	seen := make(map[string]struct{}, len(custom))
	for _, word := range custom {
		normalized := lexicon.NormalizeWord(word)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		overlay.custom = append(overlay.custom, normalized)
	}
	slices.Sort(overlay.custom)
	return overlay
}

// Custom returns the normalized custom words.
func (o Overlay) Custom() []string {
	return slices.Clone(o.custom)
}

// Whitelist returns the normalized whitelisted words, sorted.
func (o Overlay) Whitelist() []string {
	out := make([]string, 0, len(o.whitelist))
	for word := range o.whitelist {
		out = append(out, word)
	}
	slices.Sort(out)
	return out
}

// Whitelisted reports whether canonical is exempt from filtering.
func (o Overlay) Whitelisted(canonical string) bool {
	_, ok := o.whitelist[canonical]
	return ok
}

func (o Overlay) isCustom(canonical string) bool {
	_, found := slices.BinarySearch(o.custom, canonical)
	return found
}
