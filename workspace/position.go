// Package workspace models batched edits spanning multiple resources: text
// mutations within a resource, file-level create/delete/rename operations,
// and attached diagnostics. The model describes what should change; applying
// the changes to real files is the host's job.
package workspace

import (
	"cmp"
	"fmt"
)

// Position is a zero-based line/character coordinate in a text resource.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// IsValid reports whether both coordinates are non-negative.
func (p Position) IsValid() bool {
	return p.Line >= 0 && p.Character >= 0
}

// Compare orders positions lexicographically by (line, character).
func (p Position) Compare(other Position) int {
	if c := cmp.Compare(p.Line, other.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Character, other.Character)
}

// Before reports whether p orders strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a half-open span [Start, End) between two positions.
// Construction does not reorder the bounds; Start <= End is the caller's
// responsibility and is not checked here.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange constructs a range from two positions as given.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// IsValid reports whether both bounds are valid and ordered.
func (r Range) IsValid() bool {
	return r.Start.IsValid() && r.End.IsValid() && r.Start.Compare(r.End) <= 0
}

// IsEmpty reports whether the range covers zero characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.Start, r.End)
}
