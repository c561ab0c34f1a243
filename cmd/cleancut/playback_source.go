package main

import (
	"errors"

	"github.com/spf13/cobra"

	"cleancut/internal/analysis"
	"cleancut/internal/lexicon"
	"cleancut/internal/logging"
	"cleancut/internal/services"
	"cleancut/internal/subtitles"
	"cleancut/internal/timeline"
)

// playbackSource is an analyzed file ready for position queries.
type playbackSource struct {
	path     string
	req      analysis.Request
	result   *timeline.Result
	playback *timeline.Playback
	// degraded is set when analysis failed and the original captions are
	// played unfiltered with no muting.
	degraded bool
}

// endMS returns the last caption end time.
func (s playbackSource) endMS() int64 {
	var end int64
	if s.result == nil {
		return 0
	}
	for _, entry := range s.result.Original.Entries {
		if entry.EndMS > end {
			end = entry.EndMS
		}
	}
	return end
}

func (c *commandContext) loadPlayback(cmd *cobra.Command, flags *analysisFlags, path string) (playbackSource, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return playbackSource{}, err
	}
	tier, err := flags.tier(cfg)
	if err != nil {
		return playbackSource{}, err
	}
	source, text, err := readSubtitleFile(path)
	if err != nil {
		return playbackSource{}, err
	}
	req := flags.request(cmd, cfg, text, tier)

	src := playbackSource{path: source, req: req}
	err = c.withAnalyzer(func(a *analysis.Analyzer) error {
		result, err := a.Analyze(cmd.Context(), req)
		if err == nil {
			src.result = result
			src.playback = timeline.NewPlayback(result, tier)
			return nil
		}
		if !services.IsDegradable(err) || errors.Is(err, services.ErrValidation) {
			return err
		}
		logger, logErr := c.ensureLogger()
		if logErr == nil {
			logging.WarnWithContext(logger, "analysis failed; playing unfiltered captions", "analysis_degraded",
				logging.Error(err),
				logging.String(logging.FieldContentID, req.ContentID),
				logging.String(logging.FieldImpact, "captions are shown unfiltered and audio is never muted"),
			)
		}
		parsed := subtitles.Parse(text)
		src.degraded = true
		src.result = &timeline.Result{Original: parsed, Filtered: parsed, Tier: lexicon.TierNone}
		src.playback = timeline.NewPlayback(src.result, lexicon.TierNone)
		return nil
	}, flags.options()...)
	if err != nil {
		return playbackSource{}, err
	}
	return src, nil
}
