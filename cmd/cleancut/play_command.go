package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"cleancut/internal/subtitles"
	"cleancut/internal/timeline"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var (
		flags   analysisFlags
		from    string
		to      string
		speedup float64
		tickMS  int
		noWait  bool
	)

	cmd := &cobra.Command{
		Use:   "play <file.srt>",
		Short: "Simulate playback, printing caption and mute transitions",
		Long: "Play steps a virtual clock through the subtitle file at the configured tick\n" +
			"interval and prints every caption change and mute toggle as a player would\n" +
			"apply them. Use --speedup to fast-forward.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if speedup <= 0 {
				return errors.New("--speedup must be positive")
			}
			tick := cfg.Playback.TickMS
			if cmd.Flags().Changed("tick") {
				tick = tickMS
			}
			if tick <= 0 {
				return errors.New("--tick must be positive")
			}

			src, err := ctx.loadPlayback(cmd, &flags, args[0])
			if err != nil {
				return err
			}

			start := int64(0)
			if from != "" {
				if start, err = parsePosition(from); err != nil {
					return err
				}
			}
			end := src.endMS()
			if to != "" {
				if end, err = parsePosition(to); err != nil {
					return err
				}
			}
			if end < start {
				return fmt.Errorf("end position %s is before start %s", subtitles.FormatTimestamp(end), subtitles.FormatTimestamp(start))
			}

			limit := rate.Every(time.Duration(float64(tick) * float64(time.Millisecond) / speedup))
			if noWait {
				limit = rate.Inf
			}
			player := &simulatedPlayer{
				playback: src.playback,
				limiter:  rate.NewLimiter(limit, 1),
				tickMS:   int64(tick),
				out:      cmd.OutOrStdout(),
				style:    newCaptionStyle(cmd.OutOrStdout()),
			}
			if src.degraded {
				fmt.Fprintln(player.out, player.style.dim("analysis unavailable: playing unfiltered captions without muting"))
			}
			summary, err := player.run(cmd, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintf(player.out, "Played %s to %s at level %s: %d captions, %d mute toggles\n",
				subtitles.FormatTimestamp(start),
				subtitles.FormatTimestamp(end),
				src.playback.Tier(),
				summary.captions,
				summary.muteToggles,
			)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "Start position (default 0)")
	cmd.Flags().StringVar(&to, "to", "", "End position (default: end of the last caption)")
	cmd.Flags().Float64Var(&speedup, "speedup", 1, "Playback speed multiplier")
	cmd.Flags().IntVar(&tickMS, "tick", 0, "Polling interval in milliseconds (default from config)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Do not pace ticks against the wall clock")
	return cmd
}

type simulatedPlayer struct {
	playback *timeline.Playback
	limiter  *rate.Limiter
	tickMS   int64
	out      io.Writer
	style    captionStyle
}

type playSummary struct {
	captions    int
	muteToggles int
}

// run polls the playback every tick from start through end, like a player's
// position callback, and prints state changes.
func (p *simulatedPlayer) run(cmd *cobra.Command, start, end int64) (playSummary, error) {
	type captionKey struct {
		index      int
		start, end int64
	}
	var (
		summary     playSummary
		lastCaption *captionKey
		muted       bool
	)
	for pos := start; pos <= end; pos += p.tickMS {
		if err := p.limiter.Wait(cmd.Context()); err != nil {
			return summary, err
		}
		stamp := "[" + subtitles.FormatTimestamp(pos) + "]"

		if now := p.playback.IsMuted(pos); now != muted {
			muted = now
			summary.muteToggles++
			if muted {
				fmt.Fprintf(p.out, "%s %s\n", stamp, p.style.muted("mute on"))
			} else {
				fmt.Fprintf(p.out, "%s %s\n", stamp, p.style.muted("mute off"))
			}
		}

		entry, ok := p.playback.CurrentCaption(pos)
		key := captionKey{index: entry.Index, start: entry.StartMS, end: entry.EndMS}
		switch {
		case ok && (lastCaption == nil || *lastCaption != key):
			lastCaption = &key
			summary.captions++
			fmt.Fprintf(p.out, "%s %s\n", stamp, p.style.caption(entry.DisplayText()))
		case !ok && lastCaption != nil:
			lastCaption = nil
			fmt.Fprintf(p.out, "%s %s\n", stamp, p.style.dim("(no caption)"))
		}
	}
	if muted {
		fmt.Fprintf(p.out, "[%s] %s\n", subtitles.FormatTimestamp(end), p.style.muted("mute off"))
		summary.muteToggles++
	}
	return summary, nil
}
