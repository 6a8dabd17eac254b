package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"jlptag/internal/config"
)

// ConfigOption customizes the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The vocabulary directory exists; the database file does not until a test
// creates one.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.VocabDir = filepath.Join(base, "vocab")
	cfg.Paths.Database = filepath.Join(base, "dict.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := os.MkdirAll(cfg.Paths.VocabDir, 0o755); err != nil {
		t.Fatalf("mkdir vocab dir: %v", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithEncoding sets the vocabulary list encoding on the test config.
func WithEncoding(encoding string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Vocab.Encoding = encoding
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.VocabDir)
}
