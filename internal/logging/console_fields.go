package logging

import "strings"

type infoField struct {
	label string
	value string
}

const infoAttrLimit = 8

// infoHighlightKeys are rendered first at info level, in this order.
var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	"error",
	FieldErrorHint,
	FieldImpact,
	"entries",
	"profane_entries",
	"muting_ranges",
	"profanity_level",
	"skipped_blocks",
}

// selectInfoFields returns formatted info-level fields and a count of hidden entries.
func selectInfoFields(attrs []kv, limit int) ([]infoField, int) {
	if limit <= 0 {
		limit = infoAttrLimit
	}
	used := make(map[string]bool, len(attrs))
	result := make([]infoField, 0, limit)
	hidden := 0

	add := func(attr kv) {
		if len(result) >= limit {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: formatValue(attr.value)})
	}

	for _, key := range infoHighlightKeys {
		for _, attr := range attrs {
			if attr.key == key && !used[key] {
				used[key] = true
				add(attr)
			}
		}
	}
	for _, attr := range attrs {
		if used[attr.key] || skipInfoKey(attr.key) {
			continue
		}
		if isDebugOnlyKey(attr.key) {
			hidden++
			continue
		}
		used[attr.key] = true
		add(attr)
	}
	return result, hidden
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldContentID, FieldTier:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	if key == FieldCorrelationID || strings.Contains(key, "correlation") {
		return true
	}
	return strings.Contains(key, "_path") || strings.Contains(key, "_dir")
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldImpact:
		return "Impact"
	}
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '.' || r == '-'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
