package turtle

import (
	"math"

	"github.com/chazu/joinery/pkg/geom"
	"github.com/chazu/joinery/pkg/path"
)

// ArcRight draws a circular arc of the given radius while turning clockwise
// by deg degrees. The arc's center sits to the turtle's right. A negative
// radius places the center on the opposite side.
//
// For |deg| >= 360 a single arc command would be ambiguous, so each full
// turn is drawn as two consecutive 180° arcs inside a saved-and-restored
// branch; the remainder is drawn normally.
func (t Turtle) ArcRight(deg, radius float64) Turtle {
	return t.arcTurn(deg, radius)
}

// ArcLeft draws a circular arc turning counterclockwise by deg degrees,
// sweeping backward around the same center ArcRight would use, so
// ArcRight(deg, r).ArcLeft(deg, r) restores the original pose. A negative
// radius places the center on the turtle's left, giving a forward
// left-curving arc.
func (t Turtle) ArcLeft(deg, radius float64) Turtle {
	return t.arcTurn(-deg, radius)
}

// arcTurn rotates the heading by the signed angle deg while sweeping a
// circle whose center lies radius units to the right (negative radius:
// left). Pen-up arcs reposition without drawing.
func (t Turtle) arcTurn(deg, radius float64) Turtle {
	if deg == 0 {
		return t
	}
	if radius == 0 {
		return t.Right(deg)
	}
	for math.Abs(deg) >= 360 {
		half := math.Copysign(180, deg)
		t = t.Branch(func(b Turtle) Turtle {
			return b.arcTurn(half, radius).arcTurn(half, radius)
		})
		// Branch restores the pose; the full turn still counts toward the
		// heading.
		t.angle += math.Copysign(360, deg)
		deg -= math.Copysign(360, deg)
	}
	if deg == 0 {
		return t
	}

	center := t.pos.Translate(t.rightVec().Mul(radius))
	rel := t.pos.Sub(center)
	end := center.Translate(rel.Rotate(deg))
	if t.pen {
		r := math.Abs(radius)
		sweep := deg > 0
		large := math.Abs(deg) > 180
		t = t.draw(func(p path.Path) path.Path {
			return p.ArcTo(end, geom.V(r, r), 0, large, sweep)
		})
	}
	t.pos = end
	t.angle += deg
	return t
}

// RoundCornerRight turns 90° clockwise through a quarter ellipse that
// advances forward units along the current heading and side units to the
// right. With forward == side this is a circular rounded corner.
func (t Turtle) RoundCornerRight(forward, side float64) Turtle {
	return t.ellipticalTurn(forward, side, true, false)
}

// RoundCornerLeft turns 90° counterclockwise through a quarter ellipse.
func (t Turtle) RoundCornerLeft(forward, side float64) Turtle {
	return t.ellipticalTurn(forward, side, false, false)
}

// HalfEllipseRight turns 180° clockwise through a half ellipse bulging
// forward units ahead, ending 2·side units to the right of the start with
// the heading reversed.
func (t Turtle) HalfEllipseRight(forward, side float64) Turtle {
	return t.ellipticalTurn(forward, side, true, true)
}

// HalfEllipseLeft turns 180° counterclockwise through a half ellipse.
func (t Turtle) HalfEllipseLeft(forward, side float64) Turtle {
	return t.ellipticalTurn(forward, side, false, true)
}

// ellipticalTurn draws a quarter or half ellipse with semi-axes side (along
// the lateral direction) and forward (along the heading). The ellipse X axis
// is the turtle's lateral axis, so the command's rotation equals the current
// heading.
func (t Turtle) ellipticalTurn(forward, side float64, right, half bool) Turtle {
	sideSign := 1.0
	turn := 90.0
	if !right {
		sideSign = -1
	}
	var end geom.Point
	if half {
		turn = 180
		end = t.pos.Translate(t.rightVec().Mul(2 * side * sideSign))
	} else {
		end = t.pos.
			Translate(t.Dir().Mul(forward)).
			Translate(t.rightVec().Mul(side * sideSign))
	}
	if t.pen {
		radii := geom.V(math.Abs(side), math.Abs(forward))
		rot := geom.NormalizeDeg(t.angle)
		t = t.draw(func(p path.Path) path.Path {
			return p.ArcTo(end, radii, rot, false, right)
		})
	}
	t.pos = end
	if right {
		t.angle += turn
	} else {
		t.angle -= turn
	}
	return t
}
