// Package vocab builds the lookup index from the five JLPT vocabulary lists.
//
// The Loader reads VocabList.N5.csv through VocabList.N1.csv, the Builder
// folds their rows into per-form accumulators, and the resolution pass picks
// one level per word form: the most advanced tier that mentions it, with the
// union of every gloss seen and the kanji form that produced the winning tier
// kept as provenance. The resulting Index is immutable and is the only thing
// the annotator consults while scanning the database.
package vocab
