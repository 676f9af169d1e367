package model

// Match locates one occurrence of a matched index term inside a field.
// Start and Length are byte offsets into the original, unmodified field text.
type Match struct {
	Term   string `json:"term"`
	Field  string `json:"field"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

// End returns the exclusive end offset of the match.
func (m Match) End() int {
	return m.Start + m.Length
}
