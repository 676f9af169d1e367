package search

import (
	"github.com/gcbaptista/mfg-search/index"
)

// BM25Calculator handles BM25 score calculations over the per-field statistics
// recorded in the index.
type BM25Calculator struct {
	invertedIndex *index.InvertedIndex
}

// NewBM25Calculator creates a new BM25 calculator
func NewBM25Calculator(invIndex *index.InvertedIndex) *BM25Calculator {
	return &BM25Calculator{invertedIndex: invIndex}
}

// TermFrequencyWeight returns the saturated, length-normalized term frequency
// (tf * (k1 + 1)) / (tf + k1 * (1 - b + b * (|field| / avgFieldLength))).
func (calc *BM25Calculator) TermFrequencyWeight(tf int, docID uint32, field string) float64 {
	if tf <= 0 {
		return 0
	}
	k1 := calc.invertedIndex.BM25.K1
	b := calc.invertedIndex.BM25.B

	lengthNorm := 1 - b
	if avg := calc.invertedIndex.AverageFieldLength[field]; avg > 0 {
		doc, _ := calc.invertedIndex.Document(docID)
		lengthNorm += b * float64(doc.FieldLengths[field]) / avg
	}

	freq := float64(tf)
	return (freq * (k1 + 1)) / (freq + k1*lengthNorm)
}

// Score returns the contribution of one posting: field boost * idf * tf weight.
func (calc *BM25Calculator) Score(entry *index.TermEntry, posting index.PostingEntry) float64 {
	boost := calc.invertedIndex.FieldBoost(posting.FieldName)
	return boost * entry.IDF * calc.TermFrequencyWeight(posting.TermFrequency, posting.DocID, posting.FieldName)
}
