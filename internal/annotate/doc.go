// Package annotate matches dictionary entries against the vocabulary index
// and writes resolved JLPT levels back to the dictionary store.
//
// Decide implements the match cascade for a single entry and is pure; the
// Annotator drives it across the whole dictionary, queues only the updates
// that would change a stored value, and applies them in one transaction.
package annotate
