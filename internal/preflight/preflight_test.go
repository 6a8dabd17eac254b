package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jlptag/internal/dict"
	"jlptag/internal/jlpt"
	"jlptag/internal/testsupport"
	"jlptag/internal/vocab"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckVocabLists_AllPresent(t *testing.T) {
	dir := t.TempDir()
	for _, level := range jlpt.Levels() {
		writeList(t, dir, level)
	}
	result := CheckVocabLists(dir)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "5 of 5") {
		t.Fatalf("detail = %q, want full count", result.Detail)
	}
}

func TestCheckVocabLists_SomeMissing(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, jlpt.LevelN5)
	writeList(t, dir, jlpt.LevelN1)

	result := CheckVocabLists(dir)
	if !result.Passed {
		t.Fatalf("expected pass with partial lists, got: %s", result.Detail)
	}
	for _, tier := range []string{"N4", "N3", "N2"} {
		if !strings.Contains(result.Detail, tier) {
			t.Errorf("detail %q does not name missing tier %s", result.Detail, tier)
		}
	}
}

func TestCheckVocabLists_NonePresent(t *testing.T) {
	result := CheckVocabLists(t.TempDir())
	if result.Passed {
		t.Fatal("expected failure when no list exists")
	}
}

func TestCheckDatabaseFile_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.db")
	if err := os.WriteFile(path, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDatabaseFile(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckDatabaseFile_Missing(t *testing.T) {
	result := CheckDatabaseFile(filepath.Join(t.TempDir(), "dict.db"))
	if result.Passed {
		t.Fatal("expected failure for missing database")
	}
}

func TestCheckSchema_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.db")
	testsupport.CreateDictDB(t, path, []dict.Entry{{Reading: "やま", Meaning: "mountain"}})

	result := CheckSchema(context.Background(), path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "1 entries") {
		t.Fatalf("detail = %q, want entry count", result.Detail)
	}
}

func TestCheckSchema_MissingDatabase(t *testing.T) {
	result := CheckSchema(context.Background(), filepath.Join(t.TempDir(), "dict.db"))
	if result.Passed {
		t.Fatal("expected failure for missing database")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	for _, level := range jlpt.Levels() {
		writeList(t, cfg.Paths.VocabDir, level)
	}
	testsupport.CreateDictDB(t, cfg.Paths.Database, []dict.Entry{{Reading: "やま", Meaning: "mountain"}})

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("RunAll returned %d results, want 4", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Errorf("%s failed: %s", result.Name, result.Detail)
		}
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("RunAll(nil) = %v, want nil", results)
	}
}

func writeList(t *testing.T, dir string, level jlpt.Level) {
	t.Helper()
	path := filepath.Join(dir, vocab.ListFileName(level))
	if err := os.WriteFile(path, []byte("山,やま,mountain\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
