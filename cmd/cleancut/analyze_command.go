package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cleancut/internal/analysis"
	"cleancut/internal/config"
	"cleancut/internal/lexicon"
	"cleancut/internal/profanity"
	"cleancut/internal/subtitles"
	"cleancut/internal/textutil"
	"cleancut/internal/timeline"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		flags     analysisFlags
		output    string
		export    bool
		jsonOut   bool
		allLevels bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file.srt>",
		Short: "Filter a subtitle file and report profanity statistics",
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
			source, text, err := readSubtitleFile(args[0])
			if err != nil {
				return err
			}
			req := flags.request(cmd, cfg, text, tier)

			if allLevels {
				return ctx.withAnalyzer(func(a *analysis.Analyzer) error {
					results, err := a.AnalyzeTiers(cmd.Context(), req)
					if err != nil {
						return err
					}
					if jsonOut {
						views := make([]analysisView, 0, len(results))
						for _, t := range lexicon.Tiers {
							if r, ok := results[t]; ok {
								views = append(views, newAnalysisView(source, req.ContentID, r))
							}
						}
						return writeJSON(cmd, views)
					}
					fmt.Fprintln(cmd.OutOrStdout(), renderLevelComparison(req.ContentID, results))
					return nil
				}, flags.options()...)
			}

			return ctx.withAnalyzer(func(a *analysis.Analyzer) error {
				result, err := a.Analyze(cmd.Context(), req)
				if err != nil {
					return err
				}

				var written []string
				if strings.TrimSpace(output) != "" {
					target, err := writeFilteredSRT(cmd.OutOrStdout(), output, result)
					if err != nil {
						return err
					}
					if target != "" {
						written = append(written, target)
					}
				}
				if export {
					target, err := exportFilteredSRT(cfg, source, result)
					if err != nil {
						return err
					}
					written = append(written, target)
				}
				if output == "-" {
					return nil
				}

				if jsonOut {
					return writeJSON(cmd, newAnalysisView(source, req.ContentID, result))
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStats(source, req.ContentID, result))
				if len(result.Stats.WordCounts) > 0 {
					fmt.Fprintln(out, renderWordCounts(result.Stats.WordCounts))
				}
				for _, target := range written {
					fmt.Fprintf(out, "Wrote filtered subtitles to %s\n", target)
				}
				return nil
			}, flags.options()...)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the filtered SRT to this path (\"-\" for stdout)")
	cmd.Flags().BoolVar(&export, "export", false, "Write the filtered SRT into paths.output_dir")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&allLevels, "all-levels", false, "Analyze at every filter level and compare")
	return cmd
}

// writeFilteredSRT writes the filtered document to target, or to out when
// target is "-". Markers are kept so downstream renderers can restyle
// replacements.
func writeFilteredSRT(out io.Writer, target string, result *timeline.Result) (string, error) {
	content := subtitles.Serialize(result.Filtered)
	if target == "-" {
		_, err := io.WriteString(out, content)
		return "", err
	}
	resolved, err := config.ExpandPath(target)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write filtered subtitles: %w", err)
	}
	return resolved, nil
}

func exportFilteredSRT(cfg *config.Config, source string, result *timeline.Result) (string, error) {
	name := textutil.ExportName(source, result.Tier.String())
	return writeFilteredSRT(io.Discard, filepath.Join(cfg.Paths.OutputDir, name), result)
}

func renderStats(source, contentID string, result *timeline.Result) string {
	stats := result.Stats
	rows := [][]string{
		{"Source", source},
		{"Content ID", contentID},
		{"Filter level", result.Tier.String()},
		{"Captions", strconv.Itoa(stats.TotalEntries)},
		{"Profane captions", fmt.Sprintf("%d (%.1f%%)", stats.ProfaneEntries, stats.Percentage)},
		{"Profanity level", stats.Level.String()},
		{"Muting ranges", strconv.Itoa(len(result.MutingRanges))},
		{"Muted time", formatMillis(timeline.TotalDuration(result.MutingRanges))},
	}
	return renderTable(tableSpec{
		title:   "Analysis",
		headers: []string{"Field", "Value"},
		rows:    rows,
	})
}

func renderWordCounts(counts map[string]int) string {
	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	rows := make([][]string, 0, len(words))
	total := 0
	for _, word := range words {
		rows = append(rows, []string{word, strconv.Itoa(counts[word])})
		total += counts[word]
	}
	return renderTable(tableSpec{
		title:   "Detected words",
		headers: []string{"Word", "Count"},
		rows:    rows,
		aligns:  []columnAlignment{alignLeft, alignRight},
		footer:  []string{"Total", strconv.Itoa(total)},
	})
}

func renderLevelComparison(contentID string, results map[lexicon.Tier]*timeline.Result) string {
	rows := make([][]string, 0, len(results))
	for _, tier := range lexicon.Tiers {
		result, ok := results[tier]
		if !ok {
			continue
		}
		filtered := 0
		for _, entry := range result.Filtered.Entries {
			if strings.Contains(entry.FilteredText, profanity.MarkerOpen) {
				filtered++
			}
		}
		rows = append(rows, []string{
			tier.String(),
			strconv.Itoa(filtered),
			strconv.Itoa(len(result.MutingRanges)),
			formatMillis(timeline.TotalDuration(result.MutingRanges)),
			result.Stats.Level.String(),
		})
	}
	return renderTable(tableSpec{
		title:   "Levels for " + contentID,
		headers: []string{"Level", "Rewritten", "Mute Ranges", "Muted", "Profanity"},
		rows:    rows,
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
	})
}
