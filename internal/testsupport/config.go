package testsupport

import (
	"path/filepath"
	"testing"

	"cleancut/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLevel sets the default filter level.
func WithLevel(level string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Filter.Level = level
	}
}

// WithCustomWords sets the profile custom words and whitelist.
func WithCustomWords(custom, whitelist []string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Filter.CustomWords = custom
		b.cfg.Filter.Whitelist = whitelist
	}
}

// WithLexicon writes data as a lexicon file under the temp directory and
// points the config at it.
func WithLexicon(data string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "lexicon.yaml")
		WriteText(b.t, path, data)
		b.cfg.Filter.LexiconPath = path
	}
}

// WithoutStore disables the analysis database.
func WithoutStore() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
