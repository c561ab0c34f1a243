package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cleancut/internal/analysis"
	"cleancut/internal/lexicon"
	"cleancut/internal/store"
	"cleancut/internal/textutil"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage persisted analysis results",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheExportCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				summaries, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, summaries)
				}
				out := cmd.OutOrStdout()
				if len(summaries) == 0 {
					fmt.Fprintln(out, "No stored analyses")
					return nil
				}
				rows := make([][]string, 0, len(summaries))
				for _, summary := range summaries {
					rows = append(rows, []string{
						summary.ContentID,
						summary.Tier.String(),
						strconv.Itoa(summary.TotalEntries),
						strconv.Itoa(summary.ProfaneEntries),
						strings.ToUpper(summary.Level),
						summary.SavedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(tableSpec{
					title:   "Stored analyses in " + s.Path(),
					headers: []string{"Content ID", "Level", "Captions", "Profane", "Profanity", "Saved"},
					rows:    rows,
					aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <content-id>",
		Short: "Remove every stored level for a content id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentID := strings.TrimSpace(args[0])
			return ctx.withStore(func(s *store.Store) error {
				removed, err := s.Delete(cmd.Context(), contentID)
				if err != nil {
					return err
				}
				if removed == 0 {
					return fmt.Errorf("no stored analysis for %q", contentID)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stored analyses for %s\n", removed, contentID)
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				removed, err := s.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stored analyses\n", removed)
				return nil
			})
		},
	}
}

func newCacheExportCommand(ctx *commandContext) *cobra.Command {
	var (
		level string
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "export <content-id>",
		Short: "Write a stored analysis back out as original and filtered SRT files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(level) == "" {
				level = cfg.Filter.Level
			}
			tier, err := lexicon.ParseTier(level)
			if err != nil {
				return err
			}
			target := cfg.Paths.OutputDir
			if strings.TrimSpace(dir) != "" {
				target = dir
			}
			contentID := strings.TrimSpace(args[0])

			return ctx.withStore(func(s *store.Store) error {
				original, filtered, err := s.Export(cmd.Context(), analysis.Key{ContentID: contentID, Tier: tier})
				if err != nil {
					return err
				}
				if err := os.MkdirAll(target, 0o755); err != nil {
					return fmt.Errorf("create export directory: %w", err)
				}
				files := []struct {
					label   string
					content string
				}{
					{"original", original},
					{tier.String(), filtered},
				}
				out := cmd.OutOrStdout()
				for _, file := range files {
					path := filepath.Join(target, textutil.ExportName(contentID+".srt", file.label))
					if err := os.WriteFile(path, []byte(file.content), 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
					fmt.Fprintf(out, "Wrote %s\n", path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Stored level to export (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write into (default paths.output_dir)")
	return cmd
}
