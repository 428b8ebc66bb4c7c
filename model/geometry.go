package model

import "math"

// Point represents a 2D point in the relative drawing coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Span is a half-open position range [Start, End) over doc_index values.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the given doc_index falls inside the span.
func (s Span) Contains(docIndex int) bool {
	return docIndex >= s.Start && docIndex < s.End
}

// Overlaps reports whether two spans share at least one position.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// IsEmpty reports whether the span covers no positions.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}
