package interlock

import "github.com/chazu/joinery/pkg/pattern"

// transition is one active-edge flip in the expanded pattern progression:
// the point along the edge where the trace rises into an active segment or
// falls out of one. Boundary transitions sit exactly on the edge's start or
// end point.
type transition struct {
	pos      float64
	rise     bool
	boundary bool
}

// progression expands a pattern into its ordered transition list. startHigh
// and endHigh suppress the boundary transitions when the trace already
// starts or ends on the active line.
//
// Kerf eligibility: every transition after the first drawn one is shifted by
// the one-side kerf, forward when rising and backward when falling, so drawn
// active segments shrink and inactive ones grow as the kerf grows. The first
// transition has no preceding edge to react against and stays put, as do
// boundary transitions, whose corners belong to the neighboring edge.
func progression(p pattern.Pattern, startHigh, endHigh bool, kerf Kerf) []transition {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil
	}
	var ts []transition
	if segs[0].Active && !startHigh {
		ts = append(ts, transition{pos: 0, rise: true, boundary: true})
	}
	x := 0.0
	for i := 0; i < len(segs)-1; i++ {
		x += segs[i].Length
		ts = append(ts, transition{pos: x, rise: segs[i+1].Active})
	}
	if segs[len(segs)-1].Active && !endHigh {
		ts = append(ts, transition{pos: p.Length(), rise: false, boundary: true})
	}

	k := kerf.OneSide
	for i := range ts {
		if i == 0 || ts[i].boundary {
			continue
		}
		if ts[i].rise {
			ts[i].pos += k
		} else {
			ts[i].pos -= k
		}
	}
	return ts
}
