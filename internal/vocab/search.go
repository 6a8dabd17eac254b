package vocab

import (
	"sort"
	"strings"

	"jlptag/internal/jlpt"
	"jlptag/internal/textutil"
)

// SearchHit is one scored result of a meaning search.
type SearchHit struct {
	Form     string
	Level    jlpt.Level
	Meanings []string
	Score    float64
}

// MeaningSearcher ranks indexed forms against an English query by comparing
// TF-IDF fingerprints of their glosses. It answers "which word means roughly
// this" when the caller does not know the Japanese form to look up.
type MeaningSearcher struct {
	forms        []string
	entries      []Entry
	fingerprints []*textutil.Fingerprint
	idf          map[string]float64
}

// NewMeaningSearcher builds a searcher over every indexed form. Forms whose
// glosses produce no usable tokens are left out.
func NewMeaningSearcher(index *Index) *MeaningSearcher {
	s := &MeaningSearcher{}
	index.Each(func(form string, entry Entry) {
		fp := textutil.NewFingerprint(strings.Join(entry.Meanings, " "))
		if fp == nil {
			return
		}
		s.forms = append(s.forms, form)
		s.entries = append(s.entries, entry)
		s.fingerprints = append(s.fingerprints, fp)
	})

	corpus := textutil.NewCorpus()
	for _, fp := range s.fingerprints {
		corpus.Add(fp)
	}
	s.idf = corpus.IDF()
	for i, fp := range s.fingerprints {
		s.fingerprints[i] = fp.WithIDF(s.idf)
	}
	return s
}

// Search returns up to limit hits for the query, best first. Ties break on the
// form so results are stable across runs. A limit of zero or below returns
// every hit.
func (s *MeaningSearcher) Search(query string, limit int) []SearchHit {
	queryFP := textutil.NewFingerprint(query).WithIDF(s.idf)
	if queryFP == nil {
		return nil
	}

	var hits []SearchHit
	for i, fp := range s.fingerprints {
		score := textutil.CosineSimilarity(queryFP, fp)
		if score <= 0 {
			continue
		}
		hits = append(hits, SearchHit{
			Form:     s.forms[i],
			Level:    s.entries[i].Level,
			Meanings: s.entries[i].Meanings,
			Score:    score,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Form < hits[j].Form
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
