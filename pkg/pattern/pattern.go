// Package pattern implements the alternating-segment algebra describing
// tab/slot layouts along an edge. A Pattern is an immutable ordered sequence
// of segments; adjacent segments never share the same active flag because
// same-flag additions merge at construction time. TabsPattern and
// SlotsPattern are domain-typed views of the same algebra: active means a
// protruding tooth for tabs and a cut opening for slots.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLength is returned when a negative segment length is requested.
var ErrInvalidLength = errors.New("pattern: negative segment length")

// ErrInvalidCount is returned by Distributed when the derived tooth or gap
// count is unsatisfiable.
var ErrInvalidCount = errors.New("pattern: unsatisfiable tooth/gap count")

// Segment is one run of an edge: active (tooth/opening) or not, with a
// strictly positive length.
type Segment struct {
	Active bool    `json:"active"`
	Length float64 `json:"length"`
}

// Pattern is an immutable alternating-segment sequence.
type Pattern struct {
	segs []Segment
}

// New returns the empty pattern.
func New() Pattern {
	return Pattern{}
}

// FromSegments builds a pattern by folding Add over the given segments.
func FromSegments(segs ...Segment) (Pattern, error) {
	p := New()
	var err error
	for _, s := range segs {
		p, err = p.Add(s.Active, s.Length)
		if err != nil {
			return Pattern{}, err
		}
	}
	return p, nil
}

// Add appends a segment. Zero length is a no-op; negative length fails with
// ErrInvalidLength; a segment whose flag matches the last one merges into it.
func (p Pattern) Add(active bool, length float64) (Pattern, error) {
	if length < 0 {
		return Pattern{}, fmt.Errorf("add segment (active=%t, length=%g): %w", active, length, ErrInvalidLength)
	}
	if length == 0 {
		return p, nil
	}
	if n := len(p.segs); n > 0 && p.segs[n-1].Active == active {
		segs := make([]Segment, n)
		copy(segs, p.segs)
		segs[n-1].Length += length
		return Pattern{segs: segs}, nil
	}
	segs := make([]Segment, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(p.segs)] = Segment{Active: active, Length: length}
	return Pattern{segs: segs}, nil
}

// AddPattern appends every segment of o, merging at the seam as Add does.
func (p Pattern) AddPattern(o Pattern) Pattern {
	for _, s := range o.segs {
		// Lengths in o are already validated positive.
		p, _ = p.Add(s.Active, s.Length)
	}
	return p
}

// Reverse returns the pattern traversed from the other end.
func (p Pattern) Reverse() Pattern {
	segs := make([]Segment, len(p.segs))
	for i, s := range p.segs {
		segs[len(p.segs)-1-i] = s
	}
	return Pattern{segs: segs}
}

// Invert flips every segment's active flag, keeping lengths and order. The
// result describes the complementary edge of a mating piece.
func (p Pattern) Invert() Pattern {
	segs := make([]Segment, len(p.segs))
	for i, s := range p.segs {
		segs[i] = Segment{Active: !s.Active, Length: s.Length}
	}
	return Pattern{segs: segs}
}

// Segments returns a copy of the segment list.
func (p Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segs))
	copy(out, p.segs)
	return out
}

// Count returns the number of segments.
func (p Pattern) Count() int {
	return len(p.segs)
}

// Length returns the total edge length, the sum of all segment lengths.
func (p Pattern) Length() float64 {
	var sum float64
	for _, s := range p.segs {
		sum += s.Length
	}
	return sum
}

// ActiveCount returns the number of active segments.
func (p Pattern) ActiveCount() int {
	n := 0
	for _, s := range p.segs {
		if s.Active {
			n++
		}
	}
	return n
}

// Equal reports exact segment-wise equality.
func (p Pattern) Equal(o Pattern) bool {
	if len(p.segs) != len(o.segs) {
		return false
	}
	for i, s := range p.segs {
		if s != o.segs[i] {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		if s.Active {
			fmt.Fprintf(&b, "on:%g", s.Length)
		} else {
			fmt.Fprintf(&b, "off:%g", s.Length)
		}
	}
	b.WriteByte(']')
	return b.String()
}
