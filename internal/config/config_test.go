package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jlptag/internal/config"
)

func TestLoadWithoutFileUsesDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("JLPTAG_CONFIG", "")
	t.Setenv("JLPTAG_DATABASE", "")

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

	if !filepath.IsAbs(cfg.Paths.VocabDir) {
		t.Fatalf("expected vocab dir expanded to absolute path, got %q", cfg.Paths.VocabDir)
	}
	if !filepath.IsAbs(cfg.Paths.Database) {
		t.Fatalf("expected database expanded to absolute path, got %q", cfg.Paths.Database)
	}
	wantLogDir := filepath.Join(tempHome, ".local", "share", "jlptag", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Vocab.Encoding != "utf-8" {
		t.Fatalf("expected utf-8 default encoding, got %q", cfg.Vocab.Encoding)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsFileAndNormalizesEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[paths]",
		`vocab_dir = "` + dir + `"`,
		`database = "` + filepath.Join(dir, "dict.db") + `"`,
		`log_dir = ""`,
		"",
		"[vocab]",
		`encoding = "Shift_JIS"`,
		"",
		"[logging]",
		`level = "DEBUG"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JLPTAG_DATABASE", "")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Vocab.Encoding != "shift-jis" {
		t.Fatalf("expected shift-jis after normalization, got %q", cfg.Vocab.Encoding)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected empty log dir preserved, got %q", cfg.Paths.LogDir)
	}
}

func TestLoadDatabaseEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	override := filepath.Join(dir, "scratch.db")
	t.Setenv("JLPTAG_DATABASE", override)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Database != override {
		t.Fatalf("database = %q, want env override %q", cfg.Paths.Database, override)
	}
}

func TestLoadRejectsUnknownEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := "[vocab]\nencoding = \"latin-1\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
	if !strings.Contains(err.Error(), "vocab.encoding") {
		t.Fatalf("expected vocab.encoding in error, got %v", err)
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"trace\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log level")
	}
}

func TestExpandPathTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/lists")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(tempHome, "lists") {
		t.Fatalf("ExpandPath = %q, want %q", got, filepath.Join(tempHome, "lists"))
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.toml")
	t.Setenv("JLPTAG_DATABASE", "")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample config returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Vocab.Encoding != "utf-8" {
		t.Fatalf("sample encoding = %q, want utf-8", cfg.Vocab.Encoding)
	}
}

func TestLockPathSitsNextToDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Database = "/data/dict.db"
	if got := cfg.LockPath(); got != "/data/dict.db.lock" {
		t.Fatalf("LockPath = %q", got)
	}
}
