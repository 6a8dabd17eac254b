package annotate

import (
	"jlptag/internal/dict"
	"jlptag/internal/jlpt"
	"jlptag/internal/vocab"
)

// Verdict names the outcome of the match cascade for one entry.
type Verdict string

const (
	// VerdictKanjiMatch is the strongest outcome: the entry's kanji form
	// appears in the vocabulary index.
	VerdictKanjiMatch Verdict = "kanji_match"
	// VerdictReadingMatch covers kana-only entries whose reading appears in
	// the index.
	VerdictReadingMatch Verdict = "reading_match"
	// VerdictMeaningConfirmed covers entries whose kanji is unknown to the
	// index but whose reading matched and whose gloss overlaps the
	// vocabulary meanings.
	VerdictMeaningConfirmed Verdict = "meaning_confirmed"
	// VerdictKanjiMismatch rejects a reading hit because the vocabulary row
	// that supplied the level was written with a different kanji.
	VerdictKanjiMismatch Verdict = "kanji_mismatch"
	// VerdictMeaningRejected rejects a reading hit because no vocabulary
	// meaning appears in the entry's gloss.
	VerdictMeaningRejected Verdict = "meaning_rejected"
	// VerdictNoMatch means no index form applied at all.
	VerdictNoMatch Verdict = "no_match"
)

// Matched reports whether the verdict carries a level candidate.
func (v Verdict) Matched() bool {
	switch v {
	case VerdictKanjiMatch, VerdictReadingMatch, VerdictMeaningConfirmed:
		return true
	}
	return false
}

// Decision is the result of running the cascade for one entry.
type Decision struct {
	Verdict Verdict
	Level   jlpt.Level // set only when Verdict.Matched()
	Key     string     // the index form that drove the decision
	Rule    string     // cascade rule that settled the entry, empty for no match
}

// matchRule is one row of the cascade: a name for traces and an evaluator
// that either settles the entry or passes it to the next rule.
type matchRule struct {
	name string
	eval func(entry dict.Entry, index *vocab.Index) (Decision, bool)
}

// matchRules is the cascade in evaluation order, strongest evidence first.
// Reordering this slice changes precedence; nothing else does.
var matchRules = []matchRule{
	{name: "kanji_form", eval: matchKanjiForm},
	{name: "reading_only", eval: matchReadingOnly},
	{name: "guarded_reading", eval: matchGuardedReading},
}

// Decide runs the match cascade for a single dictionary entry. The first
// rule that applies wins:
//
//  1. the kanji form is in the index
//  2. the entry has no kanji and its reading is in the index
//  3. the entry has kanji the index does not know, but the reading is in the
//     index; accept only if the vocabulary kanji does not contradict the
//     entry and the meanings overlap
//
// Anything else is no match. Homophones are the reason rule 3 is guarded:
// a reading alone says nothing about which of its spellings the vocabulary
// list meant.
func Decide(entry dict.Entry, index *vocab.Index) Decision {
	for _, rule := range matchRules {
		if decision, ok := rule.eval(entry, index); ok {
			decision.Rule = rule.name
			return decision
		}
	}
	return Decision{Verdict: VerdictNoMatch}
}

func matchKanjiForm(entry dict.Entry, index *vocab.Index) (Decision, bool) {
	if entry.Kanji == "" {
		return Decision{}, false
	}
	hit, ok := index.Lookup(entry.Kanji)
	if !ok {
		return Decision{}, false
	}
	return Decision{Verdict: VerdictKanjiMatch, Level: hit.Level, Key: entry.Kanji}, true
}

func matchReadingOnly(entry dict.Entry, index *vocab.Index) (Decision, bool) {
	if entry.Kanji != "" {
		return Decision{}, false
	}
	hit, ok := index.Lookup(entry.Reading)
	if !ok {
		return Decision{}, false
	}
	return Decision{Verdict: VerdictReadingMatch, Level: hit.Level, Key: entry.Reading}, true
}

// matchGuardedReading settles every entry whose kanji missed the index while
// its reading hit: the hit is either contradicted by the recorded source
// kanji, confirmed by gloss overlap, or rejected.
func matchGuardedReading(entry dict.Entry, index *vocab.Index) (Decision, bool) {
	if entry.Kanji == "" {
		return Decision{}, false
	}
	hit, ok := index.Lookup(entry.Reading)
	if !ok {
		return Decision{}, false
	}
	if hit.SourceKanji != "" && hit.SourceKanji != entry.Kanji {
		return Decision{Verdict: VerdictKanjiMismatch, Key: entry.Reading}, true
	}
	if MeaningOverlap(entry.Meaning, hit.Meanings) {
		return Decision{Verdict: VerdictMeaningConfirmed, Level: hit.Level, Key: entry.Reading}, true
	}
	return Decision{Verdict: VerdictMeaningRejected, Key: entry.Reading}, true
}
