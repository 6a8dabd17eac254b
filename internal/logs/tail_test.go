package logs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jlptag/internal/config"
	"jlptag/internal/logs"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jlptag.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestPath(t *testing.T) {
	cfg := &config.Config{}
	cfg.Paths.LogDir = "/var/log/jlptag"
	if got := logs.Path(cfg); got != filepath.Join("/var/log/jlptag", "jlptag.log") {
		t.Fatalf("Path() = %q", got)
	}

	cfg.Paths.LogDir = ""
	if got := logs.Path(cfg); got != "" {
		t.Fatalf("Path() with empty log dir = %q, want empty", got)
	}
	if got := logs.Path(nil); got != "" {
		t.Fatalf("Path(nil) = %q, want empty", got)
	}
}

func TestReadLastLines(t *testing.T) {
	path := writeLog(t, "a\nb\nc\n")

	lines, offset, err := logs.ReadLast(path, 2)
	if err != nil {
		t.Fatalf("ReadLast: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if offset == 0 {
		t.Fatal("expected offset to advance")
	}
}

func TestReadLastLimitBeyondLength(t *testing.T) {
	path := writeLog(t, "only\n")

	lines, _, err := logs.ReadLast(path, 10)
	if err != nil {
		t.Fatalf("ReadLast: %v", err)
	}
	if len(lines) != 1 || lines[0] != "only" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestReadLastMissingFile(t *testing.T) {
	lines, offset, err := logs.ReadLast(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil {
		t.Fatalf("ReadLast: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Fatalf("expected empty result, got %#v at offset %d", lines, offset)
	}
}

func TestReadFromPicksUpAppends(t *testing.T) {
	path := writeLog(t, "start\n")

	_, offset, err := logs.ReadLast(path, 1)
	if err != nil {
		t.Fatalf("ReadLast: %v", err)
	}

	appendLog(t, path, "later\n")

	lines, newOffset, err := logs.ReadFrom(path, offset)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(lines) != 1 || lines[0] != "later" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if newOffset <= offset {
		t.Fatalf("offset did not advance: %d -> %d", offset, newOffset)
	}
}

func TestReadFromSkipsToEndAfterTruncation(t *testing.T) {
	path := writeLog(t, "ab\n")

	lines, offset, err := logs.ReadFrom(path, 9999)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %#v", lines)
	}
	if offset != 3 {
		t.Fatalf("offset = %d, want file size 3", offset)
	}
}

func TestFollowStreamsAppendedLines(t *testing.T) {
	path := writeLog(t, "start\n")

	_, offset, err := logs.ReadLast(path, 1)
	if err != nil {
		t.Fatalf("ReadLast: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	received := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, chanWriter{ch: received})
	}()

	appendLog(t, path, "later\n")

	select {
	case chunk := <-received:
		if !strings.Contains(chunk, "later") {
			t.Fatalf("unexpected chunk %q", chunk)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("follow did not deliver appended line")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Follow returned %v, want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close log: %v", err)
	}
}

type chanWriter struct {
	ch chan string
}

func (w chanWriter) Write(p []byte) (int, error) {
	w.ch <- string(p)
	return len(p), nil
}
