package config

import (
	"errors"
	"fmt"
)

var validLevels = map[string]struct{}{
	"none":     {},
	"mild":     {},
	"moderate": {},
	"strict":   {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFilter(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateSeverity(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFilter() error {
	if _, ok := validLevels[c.Filter.Level]; !ok {
		return fmt.Errorf("filter.level must be one of none, mild, moderate, strict (got %q)", c.Filter.Level)
	}
	return nil
}

func (c *Config) validateTiming() error {
	if c.Timing.SpeedRatio <= 0 {
		return errors.New("timing.speed_ratio must be positive")
	}
	return nil
}

func (c *Config) validateSeverity() error {
	if c.Severity.LowMax < 1 {
		return errors.New("severity.low_max must be at least 1")
	}
	if c.Severity.MediumMax <= c.Severity.LowMax {
		return errors.New("severity.medium_max must be greater than severity.low_max")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.TickMS <= 0 {
		return errors.New("playback.tick_ms must be positive")
	}
	if c.Playback.MergeGapMS < 0 {
		return errors.New("playback.merge_gap_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	return nil
}
