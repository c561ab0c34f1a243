package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"cleancut/internal/profanity"
	"cleancut/internal/subtitles"
	"cleancut/internal/timeline"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type analysisView struct {
	Source       string         `json:"source,omitempty"`
	ContentID    string         `json:"content_id,omitempty"`
	Tier         string         `json:"level"`
	Stats        timeline.Stats `json:"stats"`
	MutingRanges []rangeView    `json:"muting_ranges"`
	Captions     []captionView  `json:"captions,omitempty"`
}

type rangeView struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

type captionView struct {
	Index         int      `json:"index"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
	Original      string   `json:"original"`
	Filtered      string   `json:"filtered"`
	DetectedWords []string `json:"detected_words,omitempty"`
}

type positionView struct {
	PositionMS     int64  `json:"position_ms"`
	Position       string `json:"position"`
	Level          string `json:"level"`
	Muted          bool   `json:"muted"`
	Caption        string `json:"caption,omitempty"`
	ProfaneCaption string `json:"profane_caption,omitempty"`
	NextBoundaryMS *int64 `json:"next_mute_boundary_ms,omitempty"`
	Degraded       bool   `json:"degraded,omitempty"`
}

func newRangeViews(ranges []subtitles.TimeRange) []rangeView {
	views := make([]rangeView, 0, len(ranges))
	for _, r := range ranges {
		views = append(views, rangeView{
			Start:   subtitles.FormatTimestamp(r.StartMS),
			End:     subtitles.FormatTimestamp(r.EndMS),
			StartMS: r.StartMS,
			EndMS:   r.EndMS,
		})
	}
	return views
}

// newAnalysisView flattens a result for JSON output. Only profane captions
// are listed; markers are stripped so consumers see plain text.
func newAnalysisView(source, contentID string, result *timeline.Result) analysisView {
	view := analysisView{
		Source:       source,
		ContentID:    contentID,
		Tier:         result.Tier.String(),
		Stats:        result.Stats,
		MutingRanges: newRangeViews(result.MutingRanges),
	}
	for _, entry := range result.Filtered.Entries {
		if !entry.HasProfanity {
			continue
		}
		view.Captions = append(view.Captions, captionView{
			Index:         entry.Index,
			Start:         subtitles.FormatTimestamp(entry.StartMS),
			End:           subtitles.FormatTimestamp(entry.EndMS),
			Original:      entry.OriginalText,
			Filtered:      profanity.StripMarkers(entry.DisplayText()),
			DetectedWords: entry.DetectedWords,
		})
	}
	return view
}
