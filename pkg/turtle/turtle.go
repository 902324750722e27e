// Package turtle implements an immutable 2D turtle-graphics pen used to
// build vector outlines procedurally. A Turtle carries a position, a heading
// in degrees (0 points up on a Y-down canvas, right turns are positive), a
// pen state, and the path drawn so far. Every method returns a new Turtle;
// values never share mutable state and are safe to fan out freely.
//
// Drawing is eager: each pen-down motion appends commands to the carried
// path.Path immediately. Pen-up motion appends nothing; a move command is
// inserted lazily when drawing resumes away from the last drawn point.
package turtle

import (
	"fmt"
	"math"

	"github.com/chazu/joinery/pkg/geom"
	"github.com/chazu/joinery/pkg/path"
)

// posMatchTol decides whether the pen already sits at the path's current
// point, in which case no MoveTo is needed before drawing.
const posMatchTol = 1e-9

// Turtle is an immutable pen state plus the path drawn so far.
type Turtle struct {
	pos    geom.Point
	angle  float64 // heading in degrees, 0 = up, clockwise positive
	pen    bool
	pth    path.Path
	stacks map[string][]snapshot
}

// New returns a turtle at the origin, heading up, pen down, empty path.
func New() Turtle {
	return Turtle{pen: true}
}

// At returns a turtle at the given position and heading, pen down.
func At(pos geom.Point, headingDeg float64) Turtle {
	return Turtle{pos: pos, angle: headingDeg, pen: true}
}

// Position returns the pen position.
func (t Turtle) Position() geom.Point { return t.pos }

// Heading returns the heading in degrees (not normalized).
func (t Turtle) Heading() float64 { return t.angle }

// IsPenDown reports whether the pen is down.
func (t Turtle) IsPenDown() bool { return t.pen }

// Path returns the path drawn so far.
func (t Turtle) Path() path.Path { return t.pth }

func (t Turtle) String() string {
	pen := "up"
	if t.pen {
		pen = "down"
	}
	return fmt.Sprintf("turtle[%s @%g° pen %s, %d cmds]", t.pos, t.angle, pen, t.pth.Len())
}

// Dir returns the unit heading vector.
func (t Turtle) Dir() geom.Vec2 {
	s, c := math.Sincos(geom.Radians(t.angle))
	return geom.V(s, -c)
}

// rightVec returns the unit vector perpendicular to the heading, to the
// turtle's right.
func (t Turtle) rightVec() geom.Vec2 {
	s, c := math.Sincos(geom.Radians(t.angle))
	return geom.V(c, s)
}

// draw ensures the path's current point matches the pen position, appending
// a lazy MoveTo when it does not, then applies f to the path.
func (t Turtle) draw(f func(path.Path) path.Path) Turtle {
	pth := t.pth
	if cp, ok := pth.CurrentPoint(); !ok || !cp.Near(t.pos, posMatchTol) {
		pth = pth.MoveTo(t.pos)
	}
	t.pth = f(pth)
	return t
}

// lineTo moves the pen to pt, drawing iff the pen is down.
func (t Turtle) lineTo(pt geom.Point) Turtle {
	if t.pen {
		t = t.draw(func(p path.Path) path.Path { return p.LineTo(pt) })
	}
	t.pos = pt
	return t
}

// Forward moves d units along the heading, drawing if the pen is down.
// Negative distances move backward.
func (t Turtle) Forward(d float64) Turtle {
	return t.lineTo(t.pos.Translate(t.Dir().Mul(d)))
}

// Back moves d units against the heading.
func (t Turtle) Back(d float64) Turtle {
	return t.Forward(-d)
}

// StrafeRight translates d units perpendicular to the heading, toward the
// turtle's right, without turning. Draws if the pen is down.
func (t Turtle) StrafeRight(d float64) Turtle {
	return t.lineTo(t.pos.Translate(t.rightVec().Mul(d)))
}

// StrafeLeft translates d units to the left without turning.
func (t Turtle) StrafeLeft(d float64) Turtle {
	return t.StrafeRight(-d)
}

// Right turns clockwise by deg degrees. Pure rotation, draws nothing.
func (t Turtle) Right(deg float64) Turtle {
	t.angle += deg
	return t
}

// Left turns counterclockwise by deg degrees.
func (t Turtle) Left(deg float64) Turtle {
	t.angle -= deg
	return t
}

// SetHeading sets the heading outright.
func (t Turtle) SetHeading(deg float64) Turtle {
	t.angle = deg
	return t
}

// GoTo moves the pen to pt, drawing a line if the pen is down.
func (t Turtle) GoTo(pt geom.Point) Turtle {
	return t.lineTo(pt)
}

// JumpTo repositions the pen to pt without drawing, regardless of pen state.
// The pen state itself is unchanged.
func (t Turtle) JumpTo(pt geom.Point) Turtle {
	t.pos = pt
	return t
}

// Jump moves d units along the heading without drawing.
func (t Turtle) Jump(d float64) Turtle {
	t.pos = t.pos.Translate(t.Dir().Mul(d))
	return t
}

// JumpStrafeRight moves d units to the right without drawing.
func (t Turtle) JumpStrafeRight(d float64) Turtle {
	t.pos = t.pos.Translate(t.rightVec().Mul(d))
	return t
}

// PenUp lifts the pen.
func (t Turtle) PenUp() Turtle {
	t.pen = false
	return t
}

// PenDown lowers the pen.
func (t Turtle) PenDown() Turtle {
	t.pen = true
	return t
}

// WithPen sets the pen state.
func (t Turtle) WithPen(down bool) Turtle {
	t.pen = down
	return t
}

// WithPenUp runs f with the pen lifted and restores the previous pen state
// afterwards. The path and pose produced by f are kept.
func (t Turtle) WithPenUp(f func(Turtle) Turtle) Turtle {
	pen := t.pen
	r := f(t.PenUp())
	r.pen = pen
	return r
}
