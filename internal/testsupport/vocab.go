package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jlptag/internal/config"
	"jlptag/internal/jlpt"
	"jlptag/internal/vocab"
)

// WriteVocabList puts a tier list with the given CSV lines into the config's
// vocabulary directory.
func WriteVocabList(t testing.TB, cfg *config.Config, level jlpt.Level, lines ...string) {
	t.Helper()

	path := filepath.Join(cfg.Paths.VocabDir, vocab.ListFileName(level))
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write vocab list %s: %v", path, err)
	}
}
