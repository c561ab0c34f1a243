package timeline

import (
	"sort"

	"cleancut/internal/lexicon"
	"cleancut/internal/subtitles"
)

// Playback answers position queries against a finished Result. It is
// immutable and safe for concurrent use. A Playback built from a nil result
// never mutes and never shows a caption, which is the degraded mode when
// analysis failed.
type Playback struct {
	tier     lexicon.Tier
	captions entryIndex
	profane  entryIndex
	muting   []subtitles.TimeRange
}

// NewPlayback indexes result for queries at tier. Captions come from the
// original sequence at TierNone and from the filtered sequence otherwise.
func NewPlayback(result *Result, tier lexicon.Tier) *Playback {
	p := &Playback{tier: tier}
	if result == nil {
		return p
	}
	if tier.Filters() {
		p.captions = newEntryIndex(result.Filtered.Entries, nil)
	} else {
		p.captions = newEntryIndex(result.Original.Entries, nil)
	}
	p.profane = newEntryIndex(result.Filtered.Entries, func(e subtitles.Entry) bool { return e.HasProfanity })
	p.muting = MergeRanges(result.MutingRanges, 0)
	return p
}

// Tier returns the tier the playback was built for.
func (p *Playback) Tier() lexicon.Tier {
	return p.tier
}

// IsMuted reports whether audio should be silenced at posMS. Always false at
// TierNone.
func (p *Playback) IsMuted(posMS int64) bool {
	if !p.tier.Filters() {
		return false
	}
	_, ok := p.muteRangeAt(posMS)
	return ok
}

// CurrentCaption returns the caption on screen at posMS. When entries overlap
// the one that started last wins.
func (p *Playback) CurrentCaption(posMS int64) (subtitles.Entry, bool) {
	return p.captions.at(posMS)
}

// CurrentProfaneCaption returns the profane filtered caption at posMS, used to
// show a cue while audio is muted even if captions are hidden. Always false at
// TierNone.
func (p *Playback) CurrentProfaneCaption(posMS int64) (subtitles.Entry, bool) {
	if !p.tier.Filters() {
		return subtitles.Entry{}, false
	}
	return p.profane.at(posMS)
}

// NextMuteBoundary returns the next position after posMS at which the muted
// state flips, so players can schedule a gain change instead of polling.
func (p *Playback) NextMuteBoundary(posMS int64) (int64, bool) {
	if !p.tier.Filters() || len(p.muting) == 0 {
		return 0, false
	}
	if r, ok := p.muteRangeAt(posMS); ok {
		return r.EndMS + 1, true
	}
	idx := sort.Search(len(p.muting), func(i int) bool {
		return p.muting[i].StartMS > posMS
	})
	if idx >= len(p.muting) {
		return 0, false
	}
	return p.muting[idx].StartMS, true
}

// MutingRanges returns the merged ranges used for IsMuted.
func (p *Playback) MutingRanges() []subtitles.TimeRange {
	return append([]subtitles.TimeRange(nil), p.muting...)
}

func (p *Playback) muteRangeAt(posMS int64) (subtitles.TimeRange, bool) {
	// merged ranges are disjoint and sorted, so the candidate is the last one
	// starting at or before posMS
	idx := sort.Search(len(p.muting), func(i int) bool {
		return p.muting[i].StartMS > posMS
	}) - 1
	if idx < 0 {
		return subtitles.TimeRange{}, false
	}
	if r := p.muting[idx]; r.Contains(posMS) {
		return r, true
	}
	return subtitles.TimeRange{}, false
}

// entryIndex supports containment lookups over entries that may overlap.
// maxEnd[i] is the largest end among entries[0..i], which bounds the backward
// scan from the last entry starting at or before the position.
type entryIndex struct {
	entries []subtitles.Entry
	maxEnd  []int64
}

func newEntryIndex(entries []subtitles.Entry, keep func(subtitles.Entry) bool) entryIndex {
	selected := make([]subtitles.Entry, 0, len(entries))
	for _, entry := range entries {
		if keep == nil || keep(entry) {
			selected = append(selected, entry)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartMS < selected[j].StartMS
	})
	maxEnd := make([]int64, len(selected))
	for i, entry := range selected {
		maxEnd[i] = entry.EndMS
		if i > 0 && maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}
	return entryIndex{entries: selected, maxEnd: maxEnd}
}

func (x entryIndex) at(posMS int64) (subtitles.Entry, bool) {
	i := sort.Search(len(x.entries), func(i int) bool {
		return x.entries[i].StartMS > posMS
	}) - 1
	for ; i >= 0 && x.maxEnd[i] >= posMS; i-- {
		if x.entries[i].Contains(posMS) {
			return x.entries[i].Clone(), true
		}
	}
	return subtitles.Entry{}, false
}
