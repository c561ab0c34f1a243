package subtitles

// Entry is one caption: a time window plus its text. Times are milliseconds
// from the start of playback.
type Entry struct {
	Index         int      `json:"index"`
	StartMS       int64    `json:"start_ms"`
	EndMS         int64    `json:"end_ms"`
	OriginalText  string   `json:"original_text"`
	FilteredText  string   `json:"filtered_text,omitempty"`
	Filtered      bool     `json:"filtered,omitempty"`
	DetectedWords []string `json:"detected_words,omitempty"`
	HasProfanity  bool     `json:"has_profanity,omitempty"`
}

// DisplayText returns the rewritten text when the entry has been filtered and
// the original text otherwise.
func (e Entry) DisplayText() string {
	if e.Filtered {
		return e.FilteredText
	}
	return e.OriginalText
}

// Duration reports the entry length in milliseconds.
func (e Entry) Duration() int64 {
	if e.EndMS <= e.StartMS {
		return 0
	}
	return e.EndMS - e.StartMS
}

// Contains reports whether pos falls inside the entry, both ends inclusive.
func (e Entry) Contains(pos int64) bool {
	return e.StartMS <= pos && pos <= e.EndMS
}

// Clone returns a deep copy so callers can derive new entries without sharing
// the detected word slice.
func (e Entry) Clone() Entry {
	out := e
	if e.DetectedWords != nil {
		out.DetectedWords = append([]string(nil), e.DetectedWords...)
	}
	return out
}

// TimeRange is a closed interval of playback time in milliseconds.
type TimeRange struct {
	StartMS int64 `json:"start_ms"`
	EndMS   int64 `json:"end_ms"`
}

// Contains reports whether pos falls inside the range, both ends inclusive.
func (r TimeRange) Contains(pos int64) bool {
	return r.StartMS <= pos && pos <= r.EndMS
}

// ParsedSubtitle is an ordered caption sequence plus its profanity summary.
// The summary fields are zero until a timeline has been synthesized.
type ParsedSubtitle struct {
	Entries               []Entry     `json:"entries"`
	TotalProfanityEntries int         `json:"total_profanity_entries"`
	ProfanityTimeRanges   []TimeRange `json:"profanity_time_ranges,omitempty"`
}

// Len returns the number of entries.
func (p ParsedSubtitle) Len() int {
	return len(p.Entries)
}

// Clone returns a deep copy of the document.
func (p ParsedSubtitle) Clone() ParsedSubtitle {
	out := ParsedSubtitle{TotalProfanityEntries: p.TotalProfanityEntries}
	if p.Entries != nil {
		out.Entries = make([]Entry, len(p.Entries))
		for i, entry := range p.Entries {
			out.Entries[i] = entry.Clone()
		}
	}
	if p.ProfanityTimeRanges != nil {
		out.ProfanityTimeRanges = append([]TimeRange(nil), p.ProfanityTimeRanges...)
	}
	return out
}
