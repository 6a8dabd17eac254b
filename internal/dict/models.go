package dict

import "jlptag/internal/jlpt"

// Entry is one dictionary headword row. Kanji is empty for kana-only words;
// Level holds the currently stored tier label, empty when untagged.
type Entry struct {
	ID      int64
	Kanji   string
	Reading string
	Meaning string
	Level   string
}

// LevelUpdate queues a level write for one entry.
type LevelUpdate struct {
	ID    int64
	Level jlpt.Level
}

// Health captures diagnostic information about the dictionary database.
type Health struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	TotalEntries     int
	Error            string
}

// Healthy reports whether the database is usable for a tagging run.
func (h Health) Healthy() bool {
	return h.DatabaseExists &&
		h.DatabaseReadable &&
		h.TableExists &&
		len(h.MissingColumns) == 0 &&
		h.Error == ""
}

// TagStats aggregates level-column state for diagnostic output.
type TagStats struct {
	Total    int
	Untagged int
	ByLevel  map[jlpt.Level]int
	// Other counts rows whose stored level is non-empty but not a known tier.
	Other int
}
