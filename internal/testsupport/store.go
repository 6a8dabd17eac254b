package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"jlptag/internal/config"
	"jlptag/internal/dict"
)

// CreateDictDB writes a dictionary database with the production schema and
// the given rows. Rows receive sequential rowids in insertion order, and the
// level text is stored exactly as given, including the empty string.
func CreateDictDB(t testing.TB, path string, entries []dict.Entry) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open dictionary db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE dict_index (kanji TEXT, reading TEXT, meaning TEXT, level TEXT)`); err != nil {
		t.Fatalf("create dict_index: %v", err)
	}
	for _, entry := range entries {
		_, err := db.Exec(
			`INSERT INTO dict_index (kanji, reading, meaning, level) VALUES (?, ?, ?, ?)`,
			entry.Kanji, entry.Reading, entry.Meaning, entry.Level,
		)
		if err != nil {
			t.Fatalf("insert entry %q: %v", entry.Reading, err)
		}
	}
}

// MustOpenStore creates the dictionary database for cfg when entries are
// given, opens a dict.Store on it, and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config, entries []dict.Entry) *dict.Store {
	t.Helper()

	if entries != nil {
		CreateDictDB(t, cfg.Paths.Database, entries)
	}
	store, err := dict.Open(cfg.Paths.Database)
	if err != nil {
		t.Fatalf("dict.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
