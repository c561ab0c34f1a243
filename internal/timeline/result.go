package timeline

import (
	"fmt"
	"strings"

	"cleancut/internal/lexicon"
	"cleancut/internal/subtitles"
)

// Level summarizes how much profanity a title contains.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

var levelNames = map[Level]string{
	LevelNone:   "NONE",
	LevelLow:    "LOW",
	LevelMedium: "MEDIUM",
	LevelHigh:   "HIGH",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalText encodes the level as its lowercase name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText decodes a level name.
func (l *Level) UnmarshalText(data []byte) error {
	value := strings.ToUpper(strings.TrimSpace(string(data)))
	for level, name := range levelNames {
		if name == value {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown profanity level %q", string(data))
}

// Thresholds bound the profane entry counts for each level: zero is NONE, up
// to LowMax is LOW, up to MediumMax is MEDIUM, anything above is HIGH.
type Thresholds struct {
	LowMax    int `json:"low_max"`
	MediumMax int `json:"medium_max"`
}

// DefaultThresholds returns the stock 1-2 / 3-10 / more-than-10 bands.
func DefaultThresholds() Thresholds {
	return Thresholds{LowMax: 2, MediumMax: 10}
}

func (t Thresholds) normalized() Thresholds {
	if t.LowMax < 1 || t.MediumMax <= t.LowMax {
		return DefaultThresholds()
	}
	return t
}

// Classify maps a profane entry count to a level.
func (t Thresholds) Classify(count int) Level {
	t = t.normalized()
	switch {
	case count <= 0:
		return LevelNone
	case count <= t.LowMax:
		return LevelLow
	case count <= t.MediumMax:
		return LevelMedium
	default:
		return LevelHigh
	}
}

// Stats are the per-analysis counters.
type Stats struct {
	TotalEntries   int            `json:"total_entries"`
	ProfaneEntries int            `json:"profane_entries"`
	Percentage     float64        `json:"percentage"`
	Level          Level          `json:"level"`
	WordCounts     map[string]int `json:"word_counts,omitempty"`
}

// Result is a complete analysis for one tier. It is never modified after
// Synthesize returns, so it can be shared across goroutines.
type Result struct {
	Original     subtitles.ParsedSubtitle `json:"original"`
	Filtered     subtitles.ParsedSubtitle `json:"filtered"`
	MutingRanges []subtitles.TimeRange    `json:"muting_ranges,omitempty"`
	Stats        Stats                    `json:"stats"`
	Tier         lexicon.Tier             `json:"tier"`
}
