package timeline

import (
	"math"

	"cleancut/internal/lexicon"
	"cleancut/internal/profanity"
	"cleancut/internal/subtitles"
)

// FilterFunc detects and rewrites one caption's text at a tier.
type FilterFunc func(text string, tier lexicon.Tier) profanity.Result

// MatcherFilter adapts a matcher and per-request overlay into a FilterFunc.
func MatcherFilter(m *profanity.Matcher, overlay profanity.Overlay) FilterFunc {
	return func(text string, tier lexicon.Tier) profanity.Result {
		return m.Filter(text, tier, overlay)
	}
}

// Options tune synthesis.
type Options struct {
	// OffsetMS is added to every timestamp after scaling.
	OffsetMS int64
	// SpeedRatio scales every timestamp; zero means 1.
	SpeedRatio float64
	Thresholds Thresholds
}

func (o Options) syncRequested() bool {
	return o.OffsetMS != 0 || (o.SpeedRatio > 0 && o.SpeedRatio != 1)
}

// MinSyncedDurationMS is the shortest entry time sync leaves behind.
const MinSyncedDurationMS int64 = 100

// Synthesize runs fn over every entry and assembles the filtered sequence,
// muting ranges and statistics. The input is not modified. Time sync, when
// requested, is applied before filtering so every consumer sees the adjusted
// times.
func Synthesize(parsed subtitles.ParsedSubtitle, tier lexicon.Tier, fn FilterFunc, opts Options) *Result {
	original := parsed.Clone()
	original.TotalProfanityEntries = 0
	original.ProfanityTimeRanges = nil
	if opts.syncRequested() {
		original.Entries = SyncEntries(original.Entries, opts.OffsetMS, opts.SpeedRatio)
	}

	result := &Result{
		Original: original,
		Tier:     tier,
		Stats: Stats{
			TotalEntries: len(original.Entries),
			WordCounts:   make(map[string]int),
		},
	}
	filtered := make([]subtitles.Entry, 0, len(original.Entries))
	var ranges []subtitles.TimeRange
	for _, entry := range original.Entries {
		outcome := fn(entry.OriginalText, tier)
		next := entry.Clone()
		next.FilteredText = outcome.Text
		next.Filtered = true
		next.HasProfanity = outcome.HasProfanity
		next.DetectedWords = append([]string(nil), outcome.Detection.Words...)
		filtered = append(filtered, next)
		if !outcome.HasProfanity {
			continue
		}
		result.Stats.ProfaneEntries++
		ranges = append(ranges, subtitles.TimeRange{StartMS: entry.StartMS, EndMS: entry.EndMS})
		for word, count := range outcome.Detection.Counts() {
			result.Stats.WordCounts[word] += count
		}
	}

	result.Filtered = subtitles.ParsedSubtitle{
		Entries:               filtered,
		TotalProfanityEntries: result.Stats.ProfaneEntries,
		ProfanityTimeRanges:   ranges,
	}
	result.MutingRanges = append([]subtitles.TimeRange(nil), ranges...)
	result.Stats.Level = opts.Thresholds.Classify(result.Stats.ProfaneEntries)
	if result.Stats.TotalEntries > 0 {
		result.Stats.Percentage = float64(result.Stats.ProfaneEntries) / float64(result.Stats.TotalEntries) * 100
	}
	return result
}

// SyncEntries returns copies of entries with start and end scaled by speed and
// shifted by offset. Times clamp at zero and every entry keeps more than
// MinSyncedDurationMS of duration.
func SyncEntries(entries []subtitles.Entry, offsetMS int64, speed float64) []subtitles.Entry {
	if speed <= 0 {
		speed = 1
	}
	out := make([]subtitles.Entry, len(entries))
	for i, entry := range entries {
		next := entry.Clone()
		next.StartMS = syncTime(entry.StartMS, offsetMS, speed)
		next.EndMS = syncTime(entry.EndMS, offsetMS, speed)
		if next.EndMS <= next.StartMS+MinSyncedDurationMS {
			next.EndMS = next.StartMS + MinSyncedDurationMS + 1
		}
		out[i] = next
	}
	return out
}

func syncTime(ms, offsetMS int64, speed float64) int64 {
	value := int64(math.Round(float64(ms)*speed)) + offsetMS
	if value < 0 {
		return 0
	}
	return value
}
