package typoutil

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

const defaultMaxCacheSize = 1000

// TypoFinder finds the indexed terms within an edit distance of a query term.
// The term list is fixed at construction; results are memoized.
type TypoFinder struct {
	indexedTerms []string

	// Key: term + maxDistance, Value: matching indexed terms
	cache    map[string][]string
	cacheMu  sync.RWMutex
	inFlight singleflight.Group

	maxCacheSize int
}

// NewTypoFinder creates a typo finder over a lexically sorted term list.
func NewTypoFinder(indexedTerms []string) *TypoFinder {
	terms := make([]string, len(indexedTerms))
	copy(terms, indexedTerms)
	return &TypoFinder{
		indexedTerms: terms,
		cache:        make(map[string][]string),
		maxCacheSize: defaultMaxCacheSize,
	}
}

// Expand returns every indexed term whose Damerau-Levenshtein distance from term
// is at most maxDistance, the term itself included when indexed. Results keep the
// order of the indexed term list, so repeated calls are deterministic.
func (tf *TypoFinder) Expand(term string, maxDistance int) []string {
	if term == "" || maxDistance < 0 || len(tf.indexedTerms) == 0 {
		return []string{}
	}

	cacheKey := term + "\x00" + strconv.Itoa(maxDistance)
	tf.cacheMu.RLock()
	if cached, exists := tf.cache[cacheKey]; exists {
		tf.cacheMu.RUnlock()
		return cached
	}
	tf.cacheMu.RUnlock()

	// Concurrent misses for the same key share one scan
	v, _, _ := tf.inFlight.Do(cacheKey, func() (interface{}, error) {
		matches := tf.scan(term, maxDistance)

		tf.cacheMu.Lock()
		if len(tf.cache) < tf.maxCacheSize {
			tf.cache[cacheKey] = matches
		}
		tf.cacheMu.Unlock()

		return matches, nil
	})
	return v.([]string)
}

func (tf *TypoFinder) scan(term string, maxDistance int) []string {
	termLen := len([]rune(term))
	matches := make([]string, 0)

	for _, indexedTerm := range tf.indexedTerms {
		// Length-based early filtering
		if abs(len([]rune(indexedTerm))-termLen) > maxDistance {
			continue
		}
		if DamerauDistanceWithLimit(term, indexedTerm, maxDistance) <= maxDistance {
			matches = append(matches, indexedTerm)
		}
	}
	return matches
}

// CacheSize returns the number of memoized expansions.
func (tf *TypoFinder) CacheSize() int {
	tf.cacheMu.RLock()
	defer tf.cacheMu.RUnlock()
	return len(tf.cache)
}
