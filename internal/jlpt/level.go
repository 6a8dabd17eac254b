// Package jlpt defines the five JLPT proficiency tiers and their ordering.
//
// Levels run from N5 (beginner vocabulary) to N1 (the most advanced tier).
// When a word appears in several tiers the most advanced one wins, so the
// package exposes an explicit rank and comparison rather than leaving callers
// to parse the digit out of the label.
package jlpt

import "strings"

// Level is a JLPT proficiency tier label as stored in the database ("N3").
type Level string

const (
	LevelN5 Level = "N5"
	LevelN4 Level = "N4"
	LevelN3 Level = "N3"
	LevelN2 Level = "N2"
	LevelN1 Level = "N1"
)

// orderedLevels runs least advanced to most advanced. Vocabulary lists are
// ingested in this order so later tiers override earlier ones on conflict.
var orderedLevels = []Level{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}

var levelRanks = func() map[Level]int {
	ranks := make(map[Level]int, len(orderedLevels))
	for i, level := range orderedLevels {
		ranks[level] = i + 1
	}
	return ranks
}()

// Levels returns the tiers ordered least advanced (N5) to most advanced (N1).
func Levels() []Level {
	cp := make([]Level, len(orderedLevels))
	copy(cp, orderedLevels)
	return cp
}

// ParseLevel converts a string into a known Level. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseLevel(value string) (Level, bool) {
	normalized := Level(strings.ToUpper(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := levelRanks[normalized]
	return normalized, ok
}

// Rank returns the advancement rank of the level: 1 for N5 up to 5 for N1.
// Unknown levels rank 0, below every valid tier.
func (l Level) Rank() int {
	return levelRanks[l]
}

// Outranks reports whether l is a more advanced tier than other.
func (l Level) Outranks(other Level) bool {
	return l.Rank() > other.Rank()
}
