package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cleancut/internal/analysis"
	"cleancut/internal/config"
	"cleancut/internal/lexicon"
	"cleancut/internal/logging"
	"cleancut/internal/profanity"
	"cleancut/internal/store"
	"cleancut/internal/timeline"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	lexiconOnce sync.Once
	lexicon     *lexicon.Lexicon
	lexiconErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureLexicon() (*lexicon.Lexicon, error) {
	c.lexiconOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.lexiconErr = err
			return
		}
		c.lexicon, c.lexiconErr = lexicon.Load(cfg.Filter.LexiconPath)
	})
	return c.lexicon, c.lexiconErr
}

// withStore opens the analysis database for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Store.Enabled {
		return errors.New("analysis store is disabled (set store.enabled = true in the config)")
	}
	s, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open analysis store: %w", err)
	}
	defer s.Close()
	return fn(s)
}

// withAnalyzer builds an analyzer from configuration. A store that cannot be
// opened is logged and skipped; results are then kept in memory only.
func (c *commandContext) withAnalyzer(fn func(*analysis.Analyzer) error, extra ...analysis.Option) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	lex, err := c.ensureLexicon()
	if err != nil {
		return err
	}

	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithThresholds(timeline.Thresholds{
			LowMax:    cfg.Severity.LowMax,
			MediumMax: cfg.Severity.MediumMax,
		}),
	}
	if cfg.Store.Enabled {
		s, err := store.Open(cfg)
		if err != nil {
			logging.WarnWithContext(logger, "analysis store unavailable", "store_open_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "results are not persisted for this run"),
				logging.String(logging.FieldErrorHint, "another cleancut process may hold the store lock"),
			)
		} else {
			defer s.Close()
			opts = append(opts, analysis.WithPersister(s))
		}
	}
	opts = append(opts, extra...)
	return fn(analysis.New(profanity.NewMatcher(lex), opts...))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
