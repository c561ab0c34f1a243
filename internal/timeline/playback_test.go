package timeline

import (
	"reflect"
	"sync"
	"testing"

	"cleancut/internal/lexicon"
	"cleancut/internal/profanity"
	"cleancut/internal/subtitles"
)

const playbackSRT = "1\n00:00:01,000 --> 00:00:03,000\nWhat the hell\n\n" +
	"2\n00:00:05,000 --> 00:00:06,000\nNice weather\n\n" +
	"3\n00:00:08,000 --> 00:00:09,000\nShit happens\n\n"

func buildResult(t *testing.T, tier lexicon.Tier) *Result {
	t.Helper()
	return Synthesize(subtitles.Parse(playbackSRT), tier, defaultFilter(t), Options{})
}

func TestIsMutedInclusiveBounds(t *testing.T) {
	playback := NewPlayback(buildResult(t, lexicon.TierStrict), lexicon.TierStrict)
	cases := map[int64]bool{
		0: false, 999: false, 1000: true, 2000: true, 3000: true, 3001: false,
		5500: false, 8000: true, 9000: true, 9001: false,
	}
	for pos, want := range cases {
		if got := playback.IsMuted(pos); got != want {
			t.Fatalf("IsMuted(%d) = %v, want %v", pos, got, want)
		}
	}
}

func TestTierNoneNeverMutes(t *testing.T) {
	result := buildResult(t, lexicon.TierStrict)
	if len(result.MutingRanges) == 0 {
		t.Fatalf("expected stored muting ranges")
	}
	playback := NewPlayback(result, lexicon.TierNone)
	for pos := int64(0); pos <= 10000; pos += 250 {
		if playback.IsMuted(pos) {
			t.Fatalf("tier NONE muted at %d", pos)
		}
		if _, ok := playback.CurrentProfaneCaption(pos); ok {
			t.Fatalf("tier NONE returned profane caption at %d", pos)
		}
	}
	if _, ok := playback.NextMuteBoundary(0); ok {
		t.Fatalf("tier NONE should have no mute boundaries")
	}
	caption, ok := playback.CurrentCaption(2000)
	if !ok || caption.DisplayText() != "What the hell" {
		t.Fatalf("tier NONE should read original captions, got %+v", caption)
	}
}

func TestCurrentCaptionSource(t *testing.T) {
	playback := NewPlayback(buildResult(t, lexicon.TierStrict), lexicon.TierStrict)
	caption, ok := playback.CurrentCaption(1500)
	if !ok {
		t.Fatalf("expected caption at 1500")
	}
	if got := profanity.HighlightMarkers(caption.DisplayText(), "[", "]"); got != "What the [heck]" {
		t.Fatalf("unexpected caption %q", got)
	}
	if _, ok := playback.CurrentCaption(4000); ok {
		t.Fatalf("expected no caption in gap")
	}
	clean, ok := playback.CurrentCaption(5000)
	if !ok || clean.HasProfanity {
		t.Fatalf("expected clean caption at 5000, got %+v", clean)
	}
	if _, ok := playback.CurrentProfaneCaption(5000); ok {
		t.Fatalf("clean caption must not be returned as profane")
	}
	profane, ok := playback.CurrentProfaneCaption(8500)
	if !ok || !profane.HasProfanity {
		t.Fatalf("expected profane caption at 8500")
	}
}

func TestCurrentCaptionOverlappingEntries(t *testing.T) {
	result := &Result{Filtered: subtitles.ParsedSubtitle{Entries: []subtitles.Entry{
		{StartMS: 0, EndMS: 10000, OriginalText: "long"},
		{StartMS: 1000, EndMS: 2000, OriginalText: "short"},
		{StartMS: 3000, EndMS: 4000, OriginalText: "later"},
	}}}
	playback := NewPlayback(result, lexicon.TierMild)
	cases := map[int64]string{500: "long", 1500: "short", 2500: "long", 3500: "later", 9000: "long"}
	for pos, want := range cases {
		caption, ok := playback.CurrentCaption(pos)
		if !ok || caption.OriginalText != want {
			t.Fatalf("CurrentCaption(%d) = %q, %v; want %q", pos, caption.OriginalText, ok, want)
		}
	}
	if _, ok := playback.CurrentCaption(10001); ok {
		t.Fatalf("expected no caption after last end")
	}
}

func TestNextMuteBoundary(t *testing.T) {
	playback := NewPlayback(buildResult(t, lexicon.TierStrict), lexicon.TierStrict)
	cases := []struct {
		pos  int64
		want int64
		ok   bool
	}{
		{0, 1000, true},
		{1500, 3001, true},
		{3001, 8000, true},
		{8500, 9001, true},
		{9500, 0, false},
	}
	for _, tc := range cases {
		got, ok := playback.NextMuteBoundary(tc.pos)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NextMuteBoundary(%d) = %d, %v; want %d, %v", tc.pos, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNilResultPlayback(t *testing.T) {
	playback := NewPlayback(nil, lexicon.TierStrict)
	if playback.IsMuted(1000) {
		t.Fatalf("nil result must not mute")
	}
	if _, ok := playback.CurrentCaption(1000); ok {
		t.Fatalf("nil result must not show captions")
	}
}

func TestPlaybackConcurrentReads(t *testing.T) {
	playback := NewPlayback(buildResult(t, lexicon.TierStrict), lexicon.TierStrict)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(offset int64) {
			defer wg.Done()
			for pos := offset; pos < 10000; pos += 97 {
				playback.IsMuted(pos)
				playback.CurrentCaption(pos)
				playback.CurrentProfaneCaption(pos)
			}
		}(int64(w))
	}
	wg.Wait()
}

func TestMergeRanges(t *testing.T) {
	ranges := []subtitles.TimeRange{
		{StartMS: 5000, EndMS: 6000},
		{StartMS: 0, EndMS: 1000},
		{StartMS: 1500, EndMS: 2000},
		{StartMS: 1800, EndMS: 1900},
	}
	got := MergeRanges(ranges, 500)
	want := []subtitles.TimeRange{{StartMS: 0, EndMS: 2000}, {StartMS: 5000, EndMS: 6000}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MergeRanges = %v, want %v", got, want)
	}
	if ranges[0].StartMS != 5000 {
		t.Fatalf("input reordered")
	}
	if MergeRanges(nil, 100) != nil {
		t.Fatalf("expected nil for empty input")
	}
	if TotalDuration(want) != 3000 {
		t.Fatalf("unexpected total duration %d", TotalDuration(want))
	}
}

func TestFFmpegVolumeFilter(t *testing.T) {
	got := FFmpegVolumeFilter([]subtitles.TimeRange{{StartMS: 1000, EndMS: 2500}, {StartMS: 8000, EndMS: 9000}})
	want := "volume=enable='between(t,1.000,2.500)+between(t,8.000,9.000)':volume=0"
	if got != want {
		t.Fatalf("unexpected filter %q", got)
	}
	if FFmpegVolumeFilter(nil) != "" {
		t.Fatalf("expected empty filter")
	}
}
