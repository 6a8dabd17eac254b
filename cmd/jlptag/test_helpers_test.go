package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jlptag/internal/config"
	"jlptag/internal/dict"
	"jlptag/internal/testsupport"
)

// setupCLIEnv isolates process-level configuration inputs for one test.
func setupCLIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JLPTAG_CONFIG", "")
	t.Setenv("JLPTAG_DATABASE", "")
}

// writeTestConfig renders cfg into a config.toml next to the test's data
// directories and returns its path. Logging is kept at error level so test
// output stays readable.
func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nvocab_dir = %q\ndatabase = %q\nlog_dir = %q\n\n[vocab]\nencoding = %q\n\n[logging]\nlevel = \"error\"\nformat = \"console\"\n",
		cfg.Paths.VocabDir,
		cfg.Paths.Database,
		cfg.Paths.LogDir,
		cfg.Vocab.Encoding,
	)
	path := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readLevels(t *testing.T, path string) map[string]string {
	t.Helper()
	store, err := dict.Open(path)
	if err != nil {
		t.Fatalf("dict.Open: %v", err)
	}
	defer func() {
		_ = store.Close()
	}()

	levels := make(map[string]string)
	err = store.ScanEntries(context.Background(), func(entry dict.Entry) error {
		levels[entry.Reading] = entry.Level
		return nil
	})
	if err != nil {
		t.Fatalf("ScanEntries: %v", err)
	}
	return levels
}

func decodeJSON(t *testing.T, data string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(data), v); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
