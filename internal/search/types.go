package search

import (
	"sort"

	"github.com/gcbaptista/mfg-search/index"
	"github.com/gcbaptista/mfg-search/model"
)

// MatchData records, per matched index term, the fields it matched in and
// the positions of every occurrence.
type MatchData map[string]map[string][]index.Position

func (md MatchData) add(term, field string, positions []index.Position) {
	fields, ok := md[term]
	if !ok {
		fields = make(map[string][]index.Position)
		md[term] = fields
	}
	existing, seen := fields[field]
	if !seen {
		existing = []index.Position{}
	}
	for _, pos := range positions {
		duplicate := false
		for _, e := range existing {
			if e == pos {
				duplicate = true
				break
			}
		}
		if !duplicate {
			existing = append(existing, pos)
		}
	}
	fields[field] = existing
}

// Matches flattens the match data, ordered by field, start offset and term.
func (md MatchData) Matches() []model.Match {
	matches := make([]model.Match, 0)
	for term, fields := range md {
		for field, positions := range fields {
			for _, pos := range positions {
				matches = append(matches, model.Match{Term: term, Field: field, Start: pos.Start(), Length: pos.Length()})
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Length != b.Length {
			return a.Length < b.Length
		}
		return a.Term < b.Term
	})
	return matches
}

// Terms returns the matched index terms in lexical order.
func (md MatchData) Terms() []string {
	terms := make([]string, 0, len(md))
	for term := range md {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Result is one ranked document.
type Result struct {
	Ref       string    `json:"ref"`
	DocID     uint32    `json:"-"`
	Score     float64   `json:"score"`
	MatchData MatchData `json:"match_data"`
}

// candidateHit accumulates a document's score while clauses are evaluated.
type candidateHit struct {
	docID     uint32
	score     float64
	matchData MatchData
}

// docSet is a set of document ordinals.
type docSet map[uint32]struct{}

func (s docSet) intersect(other docSet) docSet {
	out := make(docSet)
	for id := range s {
		if _, ok := other[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
