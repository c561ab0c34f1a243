package subtitles

import (
	"golang.org/x/text/cases"
)

const (
	// MinimumDurationMS is assigned to entries whose end does not follow their start.
	MinimumDurationMS int64 = 2000
	// OverlapGapMS separates an overlapping entry from its predecessor.
	OverlapGapMS int64 = 100
	// DuplicateWindowMS bounds how close two identical captions must start to
	// count as a duplicate.
	DuplicateWindowMS int64 = 1000
)

// RepairReport counts the corrections Repair applied.
type RepairReport struct {
	Clamped      int
	Extended     int
	Shifted      int
	Dropped      int
	Deduplicated int
}

// Changed reports whether any correction was applied.
func (r RepairReport) Changed() bool {
	return r.Clamped+r.Extended+r.Shifted+r.Dropped+r.Deduplicated > 0
}

// Repair fixes timing and text defects so the sequence is ordered and
// non-overlapping. It is idempotent.
func Repair(entries []Entry) []Entry {
	out, _ := RepairWithReport(entries)
	return out
}

// RepairWithReport is Repair plus a count of every correction made.
func RepairWithReport(entries []Entry) ([]Entry, RepairReport) {
	var report RepairReport
	fixed := make([]Entry, 0, len(entries))
	var lastEnd int64
	for _, entry := range entries {
		entry = entry.Clone()
		entry.OriginalText = CleanText(entry.OriginalText)
		if entry.OriginalText == "" {
			report.Dropped++
			continue
		}
		if entry.StartMS < 0 {
			entry.StartMS = 0
			report.Clamped++
		}
		if entry.EndMS <= entry.StartMS {
			entry.EndMS = entry.StartMS + MinimumDurationMS
			report.Extended++
		}
		if entry.StartMS < lastEnd {
			entry.StartMS = lastEnd + OverlapGapMS
			report.Shifted++
			if entry.EndMS <= entry.StartMS {
				entry.EndMS = entry.StartMS + MinimumDurationMS
				report.Extended++
			}
		}
		lastEnd = entry.EndMS
		fixed = append(fixed, entry)
	}

	if len(fixed) < 2 {
		return fixed, report
	}
	fold := cases.Fold()
	out := fixed[:1]
	keptKey := fold.String(fixed[0].OriginalText)
	for _, entry := range fixed[1:] {
		prev := out[len(out)-1]
		key := fold.String(entry.OriginalText)
		if key == keptKey && entry.StartMS-prev.StartMS < DuplicateWindowMS {
			report.Deduplicated++
			continue
		}
		out = append(out, entry)
		keptKey = key
	}
	return out, report
}
