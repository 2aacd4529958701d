package token

import "fmt"

// Position represents a location in a markup document.
type Position struct {
	Line   int `json:"line" yaml:"line"`     // 0-based line number
	Column int `json:"column" yaml:"column"` // 0-based byte column within the line
}

// IsValid returns true if the position is not negative.
func (p Position) IsValid() bool {
	return p.Line >= 0 && p.Column >= 0
}

// Before reports whether p comes strictly before q in (line, column) order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Compare returns -1, 0 or +1 depending on whether p is before, equal to or after q.
func (p Position) Compare(q Position) int {
	switch {
	case p.Before(q):
		return -1
	case q.Before(p):
		return 1
	default:
		return 0
	}
}

// String renders the position 1-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Span represents a half-open range in a document.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Contains returns true if pos lies in [Start, End).
func (s Span) Contains(pos Position) bool {
	return !pos.Before(s.Start) && pos.Before(s.End)
}

// Encloses returns true if other lies entirely within s.
func (s Span) Encloses(other Span) bool {
	return !other.Start.Before(s.Start) && !s.End.Before(other.End)
}

// IsValid returns true if both positions are valid and End is not before Start.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}
