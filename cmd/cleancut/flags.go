package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cleancut/internal/analysis"
	"cleancut/internal/config"
	"cleancut/internal/lexicon"
	"cleancut/internal/subtitles"
)

// analysisFlags are shared by every command that analyzes a subtitle file.
// Unset flags fall back to the [filter] and [timing] config sections.
type analysisFlags struct {
	level     string
	contentID string
	title     string
	season    int
	episode   int
	custom    []string
	whitelist []string
	offsetMS  int64
	speed     float64
	dropAds   bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.level, "level", "l", "", "Filter level: none, mild, moderate, strict (default from config)")
	flags.StringVar(&f.contentID, "content-id", "", "Cache key for the subtitles (default: derived from title or text)")
	flags.StringVar(&f.title, "title", "", "Title used to derive the content id")
	flags.IntVar(&f.season, "season", 0, "Season number used to derive the content id")
	flags.IntVar(&f.episode, "episode", 0, "Episode number used to derive the content id")
	flags.StringSliceVar(&f.custom, "custom", nil, "Extra words to always replace (repeatable or comma separated)")
	flags.StringSliceVar(&f.whitelist, "whitelist", nil, "Words never to replace (repeatable or comma separated)")
	flags.Int64Var(&f.offsetMS, "offset", 0, "Shift captions by this many milliseconds")
	flags.Float64Var(&f.speed, "speed", 0, "Scale caption times by this ratio before the offset")
	flags.BoolVar(&f.dropAds, "drop-ads", false, "Remove subtitle provider and release group credits")
}

func (f *analysisFlags) tier(cfg *config.Config) (lexicon.Tier, error) {
	level := strings.TrimSpace(f.level)
	if level == "" {
		level = cfg.Filter.Level
	}
	return lexicon.ParseTier(level)
}

func (f *analysisFlags) request(cmd *cobra.Command, cfg *config.Config, text string, tier lexicon.Tier) analysis.Request {
	req := analysis.Request{
		ContentID:   strings.TrimSpace(f.contentID),
		Text:        text,
		Tier:        tier,
		CustomWords: append(append([]string(nil), cfg.Filter.CustomWords...), f.custom...),
		Whitelist:   append(append([]string(nil), cfg.Filter.Whitelist...), f.whitelist...),
		OffsetMS:    cfg.Timing.OffsetMS,
		SpeedRatio:  cfg.Timing.SpeedRatio,
	}
	if req.ContentID == "" && strings.TrimSpace(f.title) != "" {
		req.ContentID = analysis.ContentID(f.title, f.season, f.episode)
	}
	if req.ContentID == "" {
		req.ContentID = analysis.TextContentID(text)
	}
	if cmd.Flags().Changed("offset") {
		req.OffsetMS = f.offsetMS
	}
	if cmd.Flags().Changed("speed") {
		req.SpeedRatio = f.speed
	}
	return req
}

func (f *analysisFlags) options() []analysis.Option {
	return []analysis.Option{analysis.WithAdvertisementRemoval(f.dropAds)}
}

func readSubtitleFile(path string) (string, string, error) {
	resolved, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", "", fmt.Errorf("read subtitles: %w", err)
	}
	return resolved, string(data), nil
}

// parsePosition accepts an SRT timestamp ("00:01:02,500"), a Go duration
// ("1m2.5s"), or a bare millisecond count.
func parsePosition(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("position is required")
	}
	if strings.Contains(value, ":") {
		return subtitles.ParseTimestamp(value)
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("position must not be negative: %d", ms)
		}
		return ms, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q: use HH:MM:SS,mmm, a duration, or milliseconds", value)
	}
	if d < 0 {
		return 0, fmt.Errorf("position must not be negative: %s", value)
	}
	return d.Milliseconds(), nil
}
