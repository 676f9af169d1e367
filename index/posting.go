package index

import "sort"

// Position is a [start, length] pair of byte offsets into the original field text.
// It serializes as a two-element JSON array.
type Position [2]int

// Start returns the byte offset where the token begins.
func (p Position) Start() int { return p[0] }

// Length returns the token length in bytes.
func (p Position) Length() int { return p[1] }

// End returns the exclusive end offset.
func (p Position) End() int { return p[0] + p[1] }

// PostingEntry represents a document that contains a term and the field it appeared in.
type PostingEntry struct {
	DocID         uint32     `json:"doc"`                // Document ordinal, i.e. its position in the input corpus
	FieldName     string     `json:"field"`              // Indexed field name (e.g. "description")
	TermFrequency int        `json:"tf"`                 // Occurrences of the term in this field of this document
	Positions     []Position `json:"position,omitempty"` // Occurrence offsets, only when "position" is whitelisted
}

// PostingList is a slice of PostingEntry sorted by document ordinal, then field declaration order.
type PostingList []PostingEntry

// Sort orders the list by DocID, then by the field's declaration order.
func (pl PostingList) Sort(fieldOrder map[string]int) {
	sort.SliceStable(pl, func(i, j int) bool {
		if pl[i].DocID != pl[j].DocID {
			return pl[i].DocID < pl[j].DocID
		}
		return fieldOrder[pl[i].FieldName] < fieldOrder[pl[j].FieldName]
	})
}

// DocumentFrequency returns the number of distinct documents in the list.
func (pl PostingList) DocumentFrequency() int {
	count := 0
	var last uint32
	for i, entry := range pl {
		if i == 0 || entry.DocID != last {
			count++
			last = entry.DocID
		}
	}
	return count
}
