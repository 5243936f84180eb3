package testsupport

import (
	"path/filepath"
	"testing"

	"doc2dash/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose output directories live in a unique temp
// directory per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Destination = filepath.Join(base, "out")
	cfg.Paths.GlobalDir = filepath.Join(base, "global")
	cfg.Patch.Progress = false

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	return &cfg
}

// WithFullTextSearch sets docset.full_text_search.
func WithFullTextSearch(mode string) ConfigOption {
	return func(c *config.Config) {
		c.Docset.FullTextSearch = mode
	}
}
