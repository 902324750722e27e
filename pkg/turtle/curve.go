package turtle

import (
	"math"

	"github.com/chazu/joinery/pkg/geom"
	"github.com/chazu/joinery/pkg/path"
)

// Speed controls where a curve endpoint's control point sits. The zero value
// is automatic: the control point is placed at the intersection of the
// tangent lines through the start and target poses. An explicit speed places
// the control point that many units along the endpoint's heading (forward
// from the start, backward from the target).
type Speed struct {
	explicit bool
	value    float64
}

// AutoSpeed is the automatic control point placement.
var AutoSpeed = Speed{}

// SpeedOf returns an explicit control point offset.
func SpeedOf(v float64) Speed {
	return Speed{explicit: true, value: v}
}

// CurveOpts configures CurveTo. Zero value: both control points automatic.
type CurveOpts struct {
	StartSpeed  Speed
	TargetSpeed Speed
}

// CurveTo draws a Bézier curve from the current pose to the target turtle's
// pose and adopts that pose. With both speeds automatic the curve is a
// quadratic through the tangent intersection point; otherwise it is a cubic
// whose control points come from the explicit speeds, with any remaining
// automatic side using the tangent intersection. Parallel tangents have no
// intersection; the current position is used as a degenerate fallback.
func (t Turtle) CurveTo(target Turtle, o CurveOpts) Turtle {
	auto := tangentIntersection(t.pos, t.Dir(), target.pos, target.Dir())

	if !o.StartSpeed.explicit && !o.TargetSpeed.explicit {
		if t.pen {
			t = t.draw(func(p path.Path) path.Path {
				return p.QuadTo(auto, target.pos)
			})
		}
		t.pos = target.pos
		t.angle = target.angle
		return t
	}

	c1 := auto
	if o.StartSpeed.explicit {
		c1 = t.pos.Translate(t.Dir().Mul(o.StartSpeed.value))
	}
	c2 := auto
	if o.TargetSpeed.explicit {
		c2 = target.pos.Translate(target.Dir().Mul(-o.TargetSpeed.value))
	}
	if t.pen {
		t = t.draw(func(p path.Path) path.Path {
			return p.CubicTo(c1, c2, target.pos)
		})
	}
	t.pos = target.pos
	t.angle = target.angle
	return t
}

// parallelTol bounds the homogeneous W coordinate below which two tangent
// lines are treated as parallel.
const parallelTol = 1e-9

// tangentIntersection intersects the lines through p1 along d1 and p2 along
// d2 using homogeneous coordinates: each line is the cross product of two of
// its points, the intersection is the cross product of the lines. Parallel
// lines yield W ≈ 0 and fall back to p1.
func tangentIntersection(p1 geom.Point, d1 geom.Vec2, p2 geom.Point, d2 geom.Vec2) geom.Point {
	l1 := crossH(hom{p1.X, p1.Y, 1}, hom{p1.X + d1.X, p1.Y + d1.Y, 1})
	l2 := crossH(hom{p2.X, p2.Y, 1}, hom{p2.X + d2.X, p2.Y + d2.Y, 1})
	ip := crossH(l1, l2)
	if math.Abs(ip.w) <= parallelTol {
		return p1
	}
	return geom.Pt(ip.x/ip.w, ip.y/ip.w)
}

type hom struct {
	x, y, w float64
}

func crossH(a, b hom) hom {
	return hom{
		x: a.y*b.w - a.w*b.y,
		y: a.w*b.x - a.x*b.w,
		w: a.x*b.y - a.y*b.x,
	}
}
