package models

// Span is an inclusive range of row or column offsets.
type Span struct {
	// Start is the first offset (0-based).
	Start int `json:"start"`
	// End is the last offset (0-based, inclusive).
	End int `json:"end"`
}

// Len returns the number of offsets covered, or 0 for an inverted span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}
