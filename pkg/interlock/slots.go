package interlock

import (
	"github.com/chazu/joinery/pkg/pattern"
	"github.com/chazu/joinery/pkg/turtle"
)

// DrawSlots traces the openings of a slotted edge as closed rectangles
// astride the center line the turtle travels along: two mirrored long sides
// offset half the kerf-reduced slot width from the center, joined by end
// caps. Travel between openings is pen-up and fully compensated: the turtle
// leaves the call at the edge's end point on the center line with the
// heading and pen state it entered with.
//
// Opening lengths shrink under kerf exactly as tooth lengths do in DrawTabs,
// so a slotted edge cut with the same kerf receives its matching teeth.
func DrawSlots(t turtle.Turtle, pat pattern.SlotsPattern, o SlotsOptions) (turtle.Turtle, error) {
	p := pat.Pattern()
	total := p.Length()
	if p.Count() == 0 {
		return t, nil
	}

	halfW := SlotWidth(o) / 2
	ts := progression(p, false, false, o.Kerf)

	// Pair up transitions into corrected opening spans. Rises and falls
	// strictly alternate starting with a rise, by the pattern invariant.
	type span struct{ from, to float64 }
	var spans []span
	for i := 0; i+1 < len(ts); i += 2 {
		sp := span{from: ts[i].pos, to: ts[i+1].pos}
		if sp.to-sp.from < -spanTol {
			return t, negativeEdge("draw slots: opening", sp.from)
		}
		if sp.to < sp.from {
			sp.to = sp.from
		}
		spans = append(spans, sp)
	}

	t = t.Branch(func(b turtle.Turtle) turtle.Turtle {
		for _, sp := range spans {
			sp := sp
			b = b.Branch(func(r turtle.Turtle) turtle.Turtle {
				r = r.Jump(sp.from).JumpStrafeRight(halfW)
				length := sp.to - sp.from
				r = r.Forward(length)
				r = r.Left(90).Forward(2 * halfW)
				r = r.Left(90).Forward(length)
				r = r.Left(90).Forward(2 * halfW)
				return r
			})
		}
		return b
	})
	return t.Jump(total), nil
}
