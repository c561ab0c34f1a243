package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cleancut/internal/analysis"
	"cleancut/internal/subtitles"
	"cleancut/internal/timeline"
)

func newMuteCommand(ctx *commandContext) *cobra.Command {
	var (
		flags   analysisFlags
		gapMS   int64
		ffmpeg  bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "mute <file.srt>",
		Short: "List the audio ranges to mute for a subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			tier, err := flags.tier(cfg)
			if err != nil {
				return err
			}
			_, text, err := readSubtitleFile(args[0])
			if err != nil {
				return err
			}
			req := flags.request(cmd, cfg, text, tier)
			gap := cfg.Playback.MergeGapMS
			if cmd.Flags().Changed("gap") {
				gap = gapMS
			}

			return ctx.withAnalyzer(func(a *analysis.Analyzer) error {
				result, err := a.Analyze(cmd.Context(), req)
				if err != nil {
					return err
				}
				var ranges []subtitles.TimeRange
				if tier.Filters() {
					ranges = timeline.MergeRanges(result.MutingRanges, gap)
				}

				out := cmd.OutOrStdout()
				switch {
				case ffmpeg:
					if filter := timeline.FFmpegVolumeFilter(ranges); filter != "" {
						fmt.Fprintln(out, filter)
					}
					return nil
				case jsonOut:
					return writeJSON(cmd, newRangeViews(ranges))
				}

				if len(ranges) == 0 {
					fmt.Fprintf(out, "Nothing to mute at level %s\n", tier)
					return nil
				}
				rows := make([][]string, 0, len(ranges))
				for i, r := range ranges {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						formatRange(r),
						formatMillis(r.EndMS - r.StartMS),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					title:   fmt.Sprintf("Muting ranges (%s)", tier),
					headers: []string{"#", "Range", "Duration"},
					rows:    rows,
					aligns:  []columnAlignment{alignRight, alignLeft, alignRight},
					footer:  []string{"", "Total", formatMillis(timeline.TotalDuration(ranges))},
				}))
				return nil
			}, flags.options()...)
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64Var(&gapMS, "gap", 0, "Merge ranges closer than this many milliseconds (default from config)")
	cmd.Flags().BoolVar(&ffmpeg, "ffmpeg", false, "Print an ffmpeg audio filter that silences every range")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
