package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cleancut/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "cleancut")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.StorePath() != filepath.Join(wantData, "cleancut.db") {
		t.Fatalf("unexpected store path: %q", cfg.StorePath())
	}
	if cfg.Filter.Level != "moderate" {
		t.Fatalf("expected moderate default level, got %q", cfg.Filter.Level)
	}
	if cfg.Timing.SpeedRatio != 1.0 {
		t.Fatalf("expected speed ratio 1.0, got %v", cfg.Timing.SpeedRatio)
	}
	if cfg.Severity.LowMax != 2 || cfg.Severity.MediumMax != 10 {
		t.Fatalf("unexpected severity thresholds: %+v", cfg.Severity)
	}
	if !cfg.Store.Enabled {
		t.Fatal("expected store enabled by default")
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cleancut.toml")

	payload := map[string]any{
		"paths": map[string]any{
			"data_dir": filepath.Join(dir, "data"),
		},
		"filter": map[string]any{
			"level":        "STRICT",
			"custom_words": []string{"  Heck ", "heck", "Dang   It"},
			"whitelist":    []string{"Hell"},
		},
		"timing": map[string]any{
			"offset_ms":   -1500,
			"speed_ratio": 1.001,
		},
		"logging": map[string]any{
			"format": "JSON",
			"level":  "Debug",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Filter.Level != "strict" {
		t.Fatalf("expected normalized level, got %q", cfg.Filter.Level)
	}
	if strings.Join(cfg.Filter.CustomWords, ",") != "heck,dang it" {
		t.Fatalf("unexpected custom words: %v", cfg.Filter.CustomWords)
	}
	if len(cfg.Filter.Whitelist) != 1 || cfg.Filter.Whitelist[0] != "hell" {
		t.Fatalf("unexpected whitelist: %v", cfg.Filter.Whitelist)
	}
	if cfg.Timing.OffsetMS != -1500 || cfg.Timing.SpeedRatio != 1.001 {
		t.Fatalf("unexpected timing: %+v", cfg.Timing)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLevelEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLEANCUT_LEVEL", "mild")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Filter.Level != "mild" {
		t.Fatalf("expected env level, got %q", cfg.Filter.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"level", func(c *config.Config) { c.Filter.Level = "extreme" }, "filter.level"},
		{"speed", func(c *config.Config) { c.Timing.SpeedRatio = -1 }, "timing.speed_ratio"},
		{"low max", func(c *config.Config) { c.Severity.LowMax = 0 }, "severity.low_max"},
		{"medium max", func(c *config.Config) { c.Severity.MediumMax = 2 }, "severity.medium_max"},
		{"tick", func(c *config.Config) { c.Playback.TickMS = 0 }, "playback.tick_ms"},
		{"format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Playback.TickMS != 250 {
		t.Fatalf("unexpected tick: %d", cfg.Playback.TickMS)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s", dir)
		}
	}
}
