package timeline

import (
	"fmt"
	"sort"
	"strings"

	"cleancut/internal/subtitles"
)

// MergeRanges sorts ranges and coalesces any that overlap or sit within gapMS
// of each other. The input is not modified.
func MergeRanges(ranges []subtitles.TimeRange, gapMS int64) []subtitles.TimeRange {
	if len(ranges) == 0 {
		return nil
	}
	if gapMS < 0 {
		gapMS = 0
	}
	sorted := append([]subtitles.TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartMS < sorted[j].StartMS
	})

	merged := make([]subtitles.TimeRange, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.StartMS <= current.EndMS+gapMS {
			if next.EndMS > current.EndMS {
				current.EndMS = next.EndMS
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// FFmpegVolumeFilter renders an audio filter that silences every range, for
// example "volume=enable='between(t,1.000,2.000)':volume=0". It returns an
// empty string when there is nothing to mute.
func FFmpegVolumeFilter(ranges []subtitles.TimeRange) string {
	if len(ranges) == 0 {
		return ""
	}
	conditions := make([]string, 0, len(ranges))
	for _, r := range ranges {
		conditions = append(conditions, fmt.Sprintf("between(t,%.3f,%.3f)", float64(r.StartMS)/1000, float64(r.EndMS)/1000))
	}
	return fmt.Sprintf("volume=enable='%s':volume=0", strings.Join(conditions, "+"))
}

// TotalDuration sums the lengths of ranges in milliseconds.
func TotalDuration(ranges []subtitles.TimeRange) int64 {
	var total int64
	for _, r := range ranges {
		if r.EndMS > r.StartMS {
			total += r.EndMS - r.StartMS
		}
	}
	return total
}
