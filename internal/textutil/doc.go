// Package textutil provides token fingerprints and similarity scoring for
// English dictionary glosses.
//
// Fingerprints are term-frequency vectors over lowercased tokens. Glosses are
// short, so tokenization keeps two-letter words ("go", "up") that a longer-text
// tokenizer would drop, and relies on IDF weighting to discount the glue words
// ("to", "of") that appear in nearly every gloss.
package textutil
