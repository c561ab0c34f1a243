package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFilter()
	c.normalizeTiming()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Store.Path, err = expandPath(strings.TrimSpace(c.Store.Path)); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	if c.Filter.LexiconPath, err = expandPath(strings.TrimSpace(c.Filter.LexiconPath)); err != nil {
		return fmt.Errorf("filter.lexicon_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeFilter() {
	if value, ok := os.LookupEnv("CLEANCUT_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Filter.Level = value
	}
	c.Filter.Level = strings.ToLower(strings.TrimSpace(c.Filter.Level))
	if c.Filter.Level == "" {
		c.Filter.Level = defaultFilterLevel
	}
	c.Filter.CustomWords = normalizeWordList(c.Filter.CustomWords)
	c.Filter.Whitelist = normalizeWordList(c.Filter.Whitelist)
}

func (c *Config) normalizeTiming() {
	if c.Timing.SpeedRatio == 0 {
		c.Timing.SpeedRatio = defaultSpeedRatio
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeWordList(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.Join(strings.Fields(word), " "))
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
