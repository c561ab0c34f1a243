package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cleancut/internal/subtitles"
)

func newQueryCommand(ctx *commandContext) *cobra.Command {
	var (
		flags   analysisFlags
		at      string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "query <file.srt>",
		Short: "Show the caption and mute state at a playback position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(at)
			if err != nil {
				return err
			}
			src, err := ctx.loadPlayback(cmd, &flags, args[0])
			if err != nil {
				return err
			}

			view := positionView{
				PositionMS: pos,
				Position:   subtitles.FormatTimestamp(pos),
				Level:      src.playback.Tier().String(),
				Muted:      src.playback.IsMuted(pos),
				Degraded:   src.degraded,
			}
			if entry, ok := src.playback.CurrentCaption(pos); ok {
				view.Caption = entry.DisplayText()
			}
			if entry, ok := src.playback.CurrentProfaneCaption(pos); ok {
				view.ProfaneCaption = entry.DisplayText()
			}
			if next, ok := src.playback.NextMuteBoundary(pos); ok {
				view.NextBoundaryMS = &next
			}

			if jsonOut {
				return writeJSON(cmd, view)
			}
			style := newCaptionStyle(cmd.OutOrStdout())
			rows := [][]string{
				{"Position", fmt.Sprintf("%s (%d ms)", view.Position, pos)},
				{"Level", view.Level},
				{"Muted", yesNo(view.Muted)},
				{"Caption", style.caption(view.Caption)},
				{"Profane caption", style.caption(view.ProfaneCaption)},
			}
			next := "none"
			if view.NextBoundaryMS != nil {
				next = subtitles.FormatTimestamp(*view.NextBoundaryMS) + " (" + strconv.FormatInt(*view.NextBoundaryMS, 10) + " ms)"
			}
			rows = append(rows, []string{"Next mute boundary", next})
			if src.degraded {
				rows = append(rows, []string{"Degraded", "yes (analysis failed, captions unfiltered)"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
				headers: []string{"Field", "Value"},
				rows:    rows,
			}))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&at, "at", "", "Playback position (HH:MM:SS,mmm, duration like 1m30s, or milliseconds)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
