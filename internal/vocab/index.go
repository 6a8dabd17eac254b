package vocab

import (
	"jlptag/internal/jlpt"
)

// ListFileName returns the conventional file name for one tier's list.
func ListFileName(level jlpt.Level) string {
	return "VocabList." + string(level) + ".csv"
}

// Entry is the resolved index record for one word form.
type Entry struct {
	// Level is the most advanced tier that mentions the form.
	Level jlpt.Level
	// Meanings is the union of every gloss associated with the form across
	// all lists, in first-seen order.
	Meanings []string
	// SourceKanji is the kanji field of the first row that carried the
	// winning level; empty when that row had no kanji form.
	SourceKanji string
}

// Index maps word forms (kanji or kana) to their resolved entries.
type Index struct {
	entries map[string]Entry
}

// Lookup returns the resolved entry for a word form.
func (i *Index) Lookup(form string) (Entry, bool) {
	entry, ok := i.entries[form]
	return entry, ok
}

// Len returns the number of indexed word forms.
func (i *Index) Len() int {
	return len(i.entries)
}

// Each calls fn for every indexed form. Iteration order is unspecified.
func (i *Index) Each(fn func(form string, entry Entry)) {
	for form, entry := range i.entries {
		fn(form, entry)
	}
}

// provenance records one source row's contribution to a key, in list order.
type provenance struct {
	level jlpt.Level
	kanji string
}

type accumulator struct {
	meanings   []string
	meaningSet map[string]struct{}
	records    []provenance
}

// Builder accumulates vocabulary rows before resolution.
type Builder struct {
	entries map[string]*accumulator
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[string]*accumulator)}
}

// Add ingests one vocabulary row. It derives 1-2 lookup keys: the kanji form
// when present, and the kana form when it is non-empty and either differs from
// the kanji or stands alone. The caller has already validated that the row has
// a meaning and at least one form.
func (b *Builder) Add(level jlpt.Level, kanji, kana, meaning string) {
	keys := make([]string, 0, 2)
	if kanji != "" {
		keys = append(keys, kanji)
	}
	if kana != "" && (kana != kanji || kanji == "") {
		keys = append(keys, kana)
	}
	for _, key := range keys {
		acc := b.entries[key]
		if acc == nil {
			acc = &accumulator{meaningSet: make(map[string]struct{})}
			b.entries[key] = acc
		}
		if _, seen := acc.meaningSet[meaning]; !seen {
			acc.meaningSet[meaning] = struct{}{}
			acc.meanings = append(acc.meanings, meaning)
		}
		acc.records = append(acc.records, provenance{level: level, kanji: kanji})
	}
}

// Len returns the number of distinct keys accumulated so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Build runs the resolution pass: for each key the most advanced recorded tier
// wins, and the first row at that tier supplies the source kanji. Lists are
// ingested least-advanced first, but the outcome does not depend on that
// order.
func (b *Builder) Build() *Index {
	entries := make(map[string]Entry, len(b.entries))
	for key, acc := range b.entries {
		var winning jlpt.Level
		for _, record := range acc.records {
			if winning == "" || record.level.Outranks(winning) {
				winning = record.level
			}
		}
		sourceKanji := ""
		for _, record := range acc.records {
			if record.level == winning {
				sourceKanji = record.kanji
				break
			}
		}
		entries[key] = Entry{
			Level:       winning,
			Meanings:    acc.meanings,
			SourceKanji: sourceKanji,
		}
	}
	return &Index{entries: entries}
}
