package path

import (
	"math"

	"github.com/chazu/joinery/pkg/geom"
)

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: geom.Pt(math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)),
		Max: geom.Pt(math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)),
	}
}

// arcSamples controls how finely arcs and curves are sampled when computing
// bounds. Sampling slightly underestimates extrema but is plenty for layout.
const arcSamples = 32

// BoundingBox returns the axis-aligned bounds of every drawn command,
// including control polygon interiors of curves (sampled) and arcs (sampled
// via the endpoint parameterization). Pen-up moves contribute their target
// point, since downstream layout must reserve it as the subpath origin.
// Returns ok=false for a path with no commands.
func (p Path) BoundingBox() (Rect, bool) {
	if len(p.cmds) == 0 {
		return Rect{}, false
	}
	var (
		r     Rect
		have  bool
		cur   geom.Point
		start geom.Point
	)
	grow := func(pt geom.Point) {
		if !have {
			r = Rect{Min: pt, Max: pt}
			have = true
			return
		}
		r = r.Union(Rect{Min: pt, Max: pt})
	}
	for _, c := range p.cmds {
		switch c.Kind {
		case MoveTo:
			grow(c.To)
			cur, start = c.To, c.To
		case LineTo:
			grow(cur)
			grow(c.To)
			cur = c.To
		case QuadTo:
			for i := 0; i <= arcSamples; i++ {
				t := float64(i) / arcSamples
				grow(quadPoint(cur, c.C1, c.To, t))
			}
			cur = c.To
		case CubicTo:
			for i := 0; i <= arcSamples; i++ {
				t := float64(i) / arcSamples
				grow(cubicPoint(cur, c.C1, c.C2, c.To, t))
			}
			cur = c.To
		case ArcTo:
			for _, pt := range sampleArc(cur, c) {
				grow(pt)
			}
			cur = c.To
		case Close:
			grow(cur)
			grow(start)
			cur = start
		}
	}
	return r, have
}

func quadPoint(p0, c, p1 geom.Point, t float64) geom.Point {
	u := 1 - t
	return geom.Pt(
		u*u*p0.X+2*u*t*c.X+t*t*p1.X,
		u*u*p0.Y+2*u*t*c.Y+t*t*p1.Y,
	)
}

func cubicPoint(p0, c1, c2, p1 geom.Point, t float64) geom.Point {
	u := 1 - t
	return geom.Pt(
		u*u*u*p0.X+3*u*u*t*c1.X+3*u*t*t*c2.X+t*t*t*p1.X,
		u*u*u*p0.Y+3*u*u*t*c1.Y+3*u*t*t*c2.Y+t*t*t*p1.Y,
	)
}

// sampleArc converts an SVG-style endpoint arc to center parameterization and
// samples it. Degenerate radii fall back to the chord endpoints.
func sampleArc(from geom.Point, c Command) []geom.Point {
	rx, ry := math.Abs(c.Radii.X), math.Abs(c.Radii.Y)
	if rx == 0 || ry == 0 || (from.X == c.To.X && from.Y == c.To.Y) {
		return []geom.Point{from, c.To}
	}
	phi := geom.Radians(c.XRotation)
	sinp, cosp := math.Sincos(phi)

	// Transform the chord midpoint offset into the ellipse frame.
	dx2 := (from.X - c.To.X) / 2
	dy2 := (from.Y - c.To.Y) / 2
	x1 := cosp*dx2 + sinp*dy2
	y1 := -sinp*dx2 + cosp*dy2

	// Scale radii up if they cannot span the chord.
	lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	sign := 1.0
	if c.LargeArc == c.Sweep {
		sign = -1
	}
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	co := 0.0
	if den != 0 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * rx * y1 / ry
	cyp := -co * ry * x1 / rx
	cx := cosp*cxp - sinp*cyp + (from.X+c.To.X)/2
	cy := sinp*cxp + cosp*cyp + (from.Y+c.To.Y)/2

	theta1 := math.Atan2((y1-cyp)/ry, (x1-cxp)/rx)
	theta2 := math.Atan2((-y1-cyp)/ry, (-x1-cxp)/rx)
	dtheta := theta2 - theta1
	if c.Sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	} else if !c.Sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}

	pts := make([]geom.Point, 0, arcSamples+1)
	for i := 0; i <= arcSamples; i++ {
		th := theta1 + dtheta*float64(i)/arcSamples
		sint, cost := math.Sincos(th)
		x := cx + rx*cost*cosp - ry*sint*sinp
		y := cy + rx*cost*sinp + ry*sint*cosp
		pts = append(pts, geom.Pt(x, y))
	}
	return pts
}
