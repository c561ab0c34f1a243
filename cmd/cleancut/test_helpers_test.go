package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cleancut/internal/config"
	"cleancut/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("CLEANCUT_LEVEL", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "[paths]\ndata_dir = %q\nlog_dir = %q\noutput_dir = %q\n\n", cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.OutputDir)
	fmt.Fprintf(&b, "[filter]\nlevel = %q\nlexicon_path = %q\n", cfg.Filter.Level, cfg.Filter.LexiconPath)
	fmt.Fprintf(&b, "custom_words = %s\nwhitelist = %s\n\n", tomlList(cfg.Filter.CustomWords), tomlList(cfg.Filter.Whitelist))
	fmt.Fprintf(&b, "[store]\nenabled = %t\n\n", cfg.Store.Enabled)
	fmt.Fprintf(&b, "[logging]\nlevel = %q\n", cfg.Logging.Level)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func tomlList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, fmt.Sprintf("%q", v))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// sampleSubtitles is one profane caption followed by a clean one.
func sampleSubtitles(t *testing.T) string {
	t.Helper()
	return testsupport.WriteSRT(t, "sample.en.srt",
		testsupport.Caption{StartMS: 1000, EndMS: 3000, Text: "What the hell is this shit"},
		testsupport.Caption{StartMS: 5000, EndMS: 7000, Text: "Nothing to see here"},
	)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
