package interlock

import (
	"fmt"

	"github.com/chazu/joinery/pkg/pattern"
	"github.com/chazu/joinery/pkg/turtle"
)

// DrawTabs traces one tabbed edge: straight runs on the base and tooth-top
// lines connected by flank transitions. The turtle must enter at the edge
// start heading along the edge; it leaves at the edge end, on the base line
// unless EndOnTab is set. Teeth protrude o.TabWidth toward o.Dir.
//
// Each transition is an S-shaped pair of opposite turns: a concave corner on
// the base line (InnerCornersRadius) and a convex corner on the tooth top
// (OuterCornersRadius), each drawn as a quarter arc, or as a sharp 90° turn
// when its radius is zero. If a kerf shift plus the adjacent corner radii
// exhaust any straight span, DrawTabs fails with ErrNegativeEdge.
func DrawTabs(t turtle.Turtle, pat pattern.TabsPattern, o TabsOptions) (turtle.Turtle, error) {
	p := pat.Pattern()
	segs := p.Segments()
	if len(segs) == 0 {
		return t, nil
	}
	if o.TabWidth <= 0 {
		return t, fmt.Errorf("draw tabs: tab width %g must be positive", o.TabWidth)
	}
	if o.StartOnTab && !segs[0].Active {
		return t, fmt.Errorf("draw tabs: cannot start on tab level, pattern starts inactive")
	}
	if o.EndOnTab && !segs[len(segs)-1].Active {
		return t, fmt.Errorf("draw tabs: cannot end on tab level, pattern ends inactive")
	}

	total := p.Length()
	ts := progression(p, o.StartOnTab, o.EndOnTab, o.Kerf)
	s := o.Dir.sign()

	cursor := 0.0
	for _, tr := range ts {
		rIn, rOut := o.InnerCornersRadius, o.OuterCornersRadius
		if tr.boundary {
			// The edge's end points are shared with the neighboring face
			// edges; their corner treatment is not this edge's to round.
			rIn, rOut = 0, 0
		}
		before, after := rIn, rOut
		if !tr.rise {
			before, after = rOut, rIn
		}
		straight := tr.pos - before - cursor
		if straight < -spanTol {
			return t, negativeEdge("draw tabs: transition", tr.pos)
		}
		flank := o.TabWidth - rIn - rOut
		if flank < -spanTol {
			return t, negativeEdge("draw tabs: flank", tr.pos)
		}
		t = t.Forward(max(straight, 0))
		t = drawTransition(t, tr.rise, s, rIn, rOut, max(flank, 0))
		cursor = tr.pos + after
	}

	tail := total - cursor
	if tail < -spanTol {
		return t, negativeEdge("draw tabs: edge end", total)
	}
	return t.Forward(max(tail, 0)), nil
}

// drawTransition draws one flank. Rising transitions turn toward the tab
// side and back; falling transitions mirror that. The two quarter arcs have
// opposite rotation signs, which is what keeps a concave base fillet and a
// convex tooth corner on the same continuous trace.
func drawTransition(t turtle.Turtle, rise bool, s, rIn, rOut, flank float64) turtle.Turtle {
	first, second := rIn, rOut
	d1, d2 := s, -s
	if !rise {
		first, second = rOut, rIn
		d1, d2 = -s, s
	}
	t = cornerTurn(t, d1, first)
	t = t.Forward(flank)
	return cornerTurn(t, d2, second)
}

// cornerTurn turns 90° in the direction of d (+1 right, -1 left), through a
// quarter arc when radius is non-zero.
func cornerTurn(t turtle.Turtle, d, radius float64) turtle.Turtle {
	if radius == 0 {
		if d > 0 {
			return t.Right(90)
		}
		return t.Left(90)
	}
	if d > 0 {
		return t.ArcRight(90, radius)
	}
	return t.ArcLeft(90, -radius)
}
