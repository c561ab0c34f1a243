package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"cleancut/internal/config"
	"cleancut/internal/lexicon"
)

func newLexiconCommand(ctx *commandContext) *cobra.Command {
	lexCmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and validate word lists",
	}

	lexCmd.AddCommand(newLexiconShowCommand(ctx))
	lexCmd.AddCommand(newLexiconValidateCommand(ctx))
	lexCmd.AddCommand(newLexiconDumpCommand())

	return lexCmd
}

func newLexiconShowCommand(ctx *commandContext) *cobra.Command {
	var (
		level   string
		file    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the words filtered at a level",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := resolveLexicon(ctx, file)
			if err != nil {
				return err
			}
			tier := lexicon.TierStrict
			if strings.TrimSpace(level) != "" {
				if tier, err = lexicon.ParseTier(level); err != nil {
					return err
				}
			}
			words := lex.Words(tier)
			sort.SliceStable(words, func(i, j int) bool {
				if words[i].Tier != words[j].Tier {
					return words[i].Tier < words[j].Tier
				}
				return words[i].Canonical < words[j].Canonical
			})

			if jsonOut {
				type wordView struct {
					Word        string   `json:"word"`
					Replacement string   `json:"replacement"`
					Level       string   `json:"level"`
					Flexible    bool     `json:"flexible,omitempty"`
					Exceptions  []string `json:"exceptions,omitempty"`
				}
				views := make([]wordView, 0, len(words))
				for _, w := range words {
					views = append(views, wordView{
						Word:        w.Canonical,
						Replacement: w.Replacement,
						Level:       w.Tier.String(),
						Flexible:    w.Flexible,
						Exceptions:  w.Exceptions,
					})
				}
				return writeJSON(cmd, views)
			}

			rows := make([][]string, 0, len(words))
			for _, w := range words {
				rows = append(rows, []string{
					w.Tier.String(),
					w.Canonical,
					w.Replacement,
					yesNo(w.Flexible),
					strings.Join(w.Exceptions, ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
				title:   fmt.Sprintf("Words filtered at %s (%d)", tier, len(words)),
				headers: []string{"Level", "Word", "Replacement", "Flexible", "Exceptions"},
				rows:    rows,
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Filter level to list (default strict, which includes every word)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Lexicon YAML to read instead of the configured one")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newLexiconValidateCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a lexicon file for configuration errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := resolveLexicon(ctx, file)
			if err != nil {
				return err
			}
			if err := lex.Validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tier := range lexicon.Tiers[1:] {
				fmt.Fprintf(out, "%-9s %d words\n", tier.String()+":", len(lex.Words(tier)))
			}
			fmt.Fprintf(out, "Fingerprint: %s\n", lex.Fingerprint())
			fmt.Fprintln(out, "Lexicon valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Lexicon YAML to validate instead of the configured one")
	return cmd
}

func newLexiconDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "dump",
		Short:       "Print the built-in lexicon as YAML, a starting point for lexicon_path",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(lexicon.DefaultYAML())
			return err
		},
	}
}

// resolveLexicon loads file when given and the configured lexicon otherwise.
func resolveLexicon(ctx *commandContext, file string) (*lexicon.Lexicon, error) {
	if strings.TrimSpace(file) == "" {
		return ctx.ensureLexicon()
	}
	path, err := config.ExpandPath(file)
	if err != nil {
		return nil, err
	}
	return lexicon.Load(path)
}
