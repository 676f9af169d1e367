// Package search evaluates parsed queries against an index.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gcbaptista/mfg-search/index"
	"github.com/gcbaptista/mfg-search/internal/query"
	"github.com/gcbaptista/mfg-search/internal/tokenizer"
	"github.com/gcbaptista/mfg-search/internal/typoutil"
)

// Service implements the search logic for a single index.
// It fulfills the services.Searcher interface and is safe for concurrent use.
type Service struct {
	invertedIndex *index.InvertedIndex
	bm25          *BM25Calculator
	typoFinder    *typoutil.TypoFinder
	pipeline      tokenizer.Pipeline
}

// NewService creates a new search Service.
func NewService(invIndex *index.InvertedIndex) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	return &Service{
		invertedIndex: invIndex,
		bm25:          NewBM25Calculator(invIndex),
		typoFinder:    typoutil.NewTypoFinder(invIndex.Terms()),
		pipeline:      tokenizer.SearchPipeline(),
	}, nil
}

// Index returns the index the service searches.
func (s *Service) Index() *index.InvertedIndex {
	return s.invertedIndex
}

// FieldNames returns the fields a query may be scoped to.
func (s *Service) FieldNames() []string {
	return s.invertedIndex.FieldNames()
}

// Search parses queryString and evaluates it.
// A syntax error is returned as *errors.QueryParseError and no results.
func (s *Service) Search(queryString string) ([]Result, error) {
	q, err := query.Parse(queryString, s.FieldNames())
	if err != nil {
		return nil, err
	}
	return s.Query(q), nil
}

// Query evaluates a parsed query. Results are ordered by descending score,
// ties broken by document ordinal.
func (s *Service) Query(q *query.Query) []Result {
	hits := make(map[uint32]*candidateHit)
	var required docSet // nil until a required clause is seen
	prohibited := make(docSet)

	for _, clause := range q.Clauses {
		allowed := make(map[string]bool, len(clause.Fields))
		for _, f := range clause.Fields {
			allowed[f] = true
		}

		terms := []string{clause.Term}
		if clause.UsePipeline {
			terms = s.pipeline.Terms(clause.Term)
		}

		clauseMatches := make(docSet)
		for _, term := range terms {
			for _, expanded := range s.expand(term, clause) {
				entry, ok := s.invertedIndex.Lookup(expanded)
				if !ok {
					continue
				}
				for _, posting := range entry.Postings {
					if !allowed[posting.FieldName] {
						continue
					}
					clauseMatches[posting.DocID] = struct{}{}
					if clause.Presence == query.Prohibited {
						continue
					}

					hit, exists := hits[posting.DocID]
					if !exists {
						hit = &candidateHit{docID: posting.DocID, matchData: make(MatchData)}
						hits[posting.DocID] = hit
					}
					hit.score += clause.Boost * s.bm25.Score(entry, posting)
					hit.matchData.add(expanded, posting.FieldName, posting.Positions)
				}
			}
		}

		switch clause.Presence {
		case query.Required:
			if required == nil {
				required = clauseMatches
			} else {
				required = required.intersect(clauseMatches)
			}
		case query.Prohibited:
			for id := range clauseMatches {
				prohibited[id] = struct{}{}
			}
		}
	}

	if q.IsNegated() {
		return s.negatedResults(prohibited)
	}

	results := make([]Result, 0, len(hits))
	for docID, hit := range hits {
		if required != nil {
			if _, ok := required[docID]; !ok {
				continue
			}
		}
		if _, excluded := prohibited[docID]; excluded {
			continue
		}
		results = append(results, s.result(hit))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})
	return results
}

// negatedResults returns every document not excluded, with zero score.
func (s *Service) negatedResults(prohibited docSet) []Result {
	results := make([]Result, 0)
	for i := 0; i < s.invertedIndex.DocumentCount(); i++ {
		docID := uint32(i)
		if _, excluded := prohibited[docID]; excluded {
			continue
		}
		results = append(results, s.result(&candidateHit{docID: docID, matchData: make(MatchData)}))
	}
	return results
}

func (s *Service) result(hit *candidateHit) Result {
	doc, _ := s.invertedIndex.Document(hit.docID)
	return Result{Ref: doc.Ref, DocID: hit.docID, Score: hit.score, MatchData: hit.matchData}
}

// expand maps a clause term to the index terms it matches.
func (s *Service) expand(term string, clause query.Clause) []string {
	if term == "" {
		return nil
	}
	if strings.Contains(term, query.Wildcard) {
		return s.expandWildcard(term)
	}
	if clause.EditDistance > 0 {
		return s.typoFinder.Expand(term, clause.EditDistance)
	}
	if _, ok := s.invertedIndex.Lookup(term); ok {
		return []string{term}
	}
	return nil
}

func (s *Service) expandWildcard(pattern string) []string {
	prefix := pattern[:strings.Index(pattern, query.Wildcard)]
	candidates := s.invertedIndex.TermsWithPrefix(prefix)

	// A single trailing wildcard is a plain prefix search.
	if strings.Count(pattern, query.Wildcard) == 1 && strings.HasSuffix(pattern, query.Wildcard) {
		return candidates
	}

	matches := make([]string, 0)
	for _, term := range candidates {
		if matchWildcard(pattern, term) {
			matches = append(matches, term)
		}
	}
	return matches
}

// matchWildcard reports whether s matches pattern, where '*' matches any
// (possibly empty) run of characters and everything else matches itself.
func matchWildcard(pattern, s string) bool {
	p, i := 0, 0
	starP, starI := -1, 0
	for i < len(s) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			starP, starI = p, i
			p++
		case p < len(pattern) && pattern[p] == s[i]:
			p++
			i++
		case starP >= 0:
			starI++
			p, i = starP+1, starI
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
