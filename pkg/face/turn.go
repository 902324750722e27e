package face

import (
	"math"

	"github.com/chazu/joinery/pkg/geom"
	"github.com/chazu/joinery/pkg/interlock"
	"github.com/chazu/joinery/pkg/turtle"
)

// TurnLevel is the policy picking which physical level a corner's geometry
// is specified at. TurnAuto resolves right and left turns to opposite
// levels, determined by which side the teeth protrude toward.
type TurnLevel int

const (
	TurnAuto TurnLevel = iota
	TurnBase
	TurnTab
)

// TurnOpts configures one turn operation.
type TurnOpts struct {
	Level TurnLevel
}

// tanLimit is the multiplier beyond which the tan-offset correction is
// numerically useless (near-180° turns) and the explicit strafe-turn-strafe
// maneuver takes over.
const tanLimit = 100

func turnMode(opts []TurnOpts) TurnLevel {
	if len(opts) > 0 {
		return opts[0].Level
	}
	return TurnAuto
}

func dirSign(d interlock.Dir) float64 {
	if d == interlock.Right {
		return 1
	}
	return -1
}

// turnLevelOf resolves the turn's physical level. Auto: turning away from
// the tabs side resolves to Tab, toward it to Base.
func turnLevelOf(mode TurnLevel, dir, tabsSign float64) Level {
	switch mode {
	case TurnBase:
		return Base
	case TurnTab:
		return Tab
	default:
		if dir != tabsSign {
			return Tab
		}
		return Base
	}
}

// addTurn appends a Dual segment for a turn of deg degrees in direction dir
// (+1 right, -1 left). draw realizes the turn itself; arcLike turns absorb a
// level mismatch by adjusting their radii (the parallel line's arc radius
// differs by the tab width), every other turn by symmetric forward offsets.
func (f TabbedFace) addTurn(deg, dir float64, mode TurnLevel, arcLike bool,
	draw func(t turtle.Turtle, radiusAdjust float64) turtle.Turtle) TabbedFace {

	opts := f.opts
	render := func(run Level) func(turtle.Turtle) turtle.Turtle {
		return func(t turtle.Turtle) turtle.Turtle {
			return renderTurn(t, opts, run, deg, dir, mode, arcLike, draw)
		}
	}
	return f.addSeg(faceSeg{kind: segDual, base: render(Base), tab: render(Tab)})
}

// renderTurn draws one corner while the pen runs on level run.
//
// When the corner's physical level differs from the pen's line, the pen
// must overshoot or undershoot the nominal corner so that the OTHER
// parallel line stays geometrically correct through the turn: a symmetric
// forward offset of tabWidth·tan(deg/2), positive when the pen's line
// passes outside the turn. Near 180° that multiplier blows up and the pen
// instead strafes across to the corner's line, turns there, and strafes
// back.
//
// Box mode adds tabWidth·max(cos θ, 0)/(1+max(cos θ, 0)) to both offsets,
// compensating the extra tooth overlap where two tabbed faces meet at other
// than a right angle: zero at 90°, half the tab width at 0°.
func renderTurn(t turtle.Turtle, o Options, run Level, deg, dir float64,
	mode TurnLevel, arcLike bool, draw func(turtle.Turtle, float64) turtle.Turtle) turtle.Turtle {

	s := dirSign(o.TabsDir)
	lvl := turnLevelOf(mode, dir, s)
	w := o.TabWidth

	off := 0.0
	if o.BoxMode {
		c := math.Max(math.Cos(geom.Radians(deg)), 0)
		off += w * c / (1 + c)
	}

	adjust := 0.0
	if lvl != run {
		if arcLike {
			if (lvl == Tab) == (dir != s) {
				adjust = -w
			} else {
				adjust = w
			}
		} else {
			m := math.Tan(geom.Radians(deg) / 2)
			if math.Abs(m) > tanLimit {
				toward := s
				if lvl == Base {
					toward = -s
				}
				t = t.StrafeRight(toward * w)
				if off != 0 {
					t = t.Forward(off)
				}
				t = draw(t, 0)
				if off != 0 {
					t = t.Forward(off)
				}
				return t.StrafeRight(-toward * w)
			}
			// The pen's line runs a tab width from the corner's line;
			// extend the legs when it passes outside the turn, shorten
			// them when it passes inside.
			penOutside := (lvl == Tab) == (dir == s)
			if penOutside {
				off += w * m
			} else {
				off -= w * m
			}
		}
	}

	if off != 0 {
		t = t.Forward(off)
	}
	t = draw(t, adjust)
	if off != 0 {
		t = t.Forward(off)
	}
	return t
}

// Right turns deg degrees clockwise at the corner.
func (f TabbedFace) Right(deg float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, 1, turnMode(opts), false,
		func(t turtle.Turtle, _ float64) turtle.Turtle { return t.Right(deg) })
}

// Left turns deg degrees counterclockwise.
func (f TabbedFace) Left(deg float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, -1, turnMode(opts), false,
		func(t turtle.Turtle, _ float64) turtle.Turtle { return t.Left(deg) })
}

// ArcRight turns deg degrees clockwise through a circular arc of the given
// radius, specified at the turn's resolved level.
func (f TabbedFace) ArcRight(deg, radius float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, 1, turnMode(opts), true,
		func(t turtle.Turtle, adj float64) turtle.Turtle {
			return t.ArcRight(deg, math.Max(radius+adj, 0))
		})
}

// ArcLeft turns deg degrees counterclockwise through a circular arc.
func (f TabbedFace) ArcLeft(deg, radius float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, -1, turnMode(opts), true,
		func(t turtle.Turtle, adj float64) turtle.Turtle {
			return t.ArcLeft(deg, -math.Max(radius+adj, 0))
		})
}

// BevelRight cuts the corner with a flat diagonal of the given length,
// splitting the turn into two half turns.
func (f TabbedFace) BevelRight(deg, size float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, 1, turnMode(opts), false,
		func(t turtle.Turtle, _ float64) turtle.Turtle {
			return t.Right(deg / 2).Forward(size).Right(deg / 2)
		})
}

// BevelLeft cuts the corner with a flat diagonal, turning left.
func (f TabbedFace) BevelLeft(deg, size float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, -1, turnMode(opts), false,
		func(t turtle.Turtle, _ float64) turtle.Turtle {
			return t.Left(deg / 2).Forward(size).Left(deg / 2)
		})
}

// SmoothRight rounds the corner with a curve that starts size units before
// the nominal corner point and ends size units after it.
func (f TabbedFace) SmoothRight(deg, size float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, 1, turnMode(opts), false, smoothDraw(deg, size, 1))
}

// SmoothLeft rounds the corner with a curve, turning left.
func (f TabbedFace) SmoothLeft(deg, size float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(deg, -1, turnMode(opts), false, smoothDraw(deg, size, -1))
}

func smoothDraw(deg, size, dir float64) func(turtle.Turtle, float64) turtle.Turtle {
	return func(t turtle.Turtle, _ float64) turtle.Turtle {
		target := t.Jump(size)
		if dir > 0 {
			target = target.Right(deg)
		} else {
			target = target.Left(deg)
		}
		target = target.Jump(size)
		return t.CurveTo(target, turtle.CurveOpts{})
	}
}

// RoundCornerRight rounds a 90° right turn with a quarter ellipse advancing
// forward units ahead and side units to the right, specified at the turn's
// resolved level.
func (f TabbedFace) RoundCornerRight(forward, side float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(90, 1, turnMode(opts), true,
		func(t turtle.Turtle, adj float64) turtle.Turtle {
			return t.RoundCornerRight(math.Max(forward+adj, 0), math.Max(side+adj, 0))
		})
}

// RoundCornerLeft rounds a 90° left turn with a quarter ellipse.
func (f TabbedFace) RoundCornerLeft(forward, side float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(90, -1, turnMode(opts), true,
		func(t turtle.Turtle, adj float64) turtle.Turtle {
			return t.RoundCornerLeft(math.Max(forward+adj, 0), math.Max(side+adj, 0))
		})
}

// HalfEllipseRight reverses the heading through a half ellipse bulging
// forward units ahead and ending 2·side units to the right.
func (f TabbedFace) HalfEllipseRight(forward, side float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(180, 1, turnMode(opts), true,
		func(t turtle.Turtle, adj float64) turtle.Turtle {
			return t.HalfEllipseRight(math.Max(forward+adj, 0), math.Max(side+adj, 0))
		})
}

// HalfEllipseLeft reverses the heading through a half ellipse to the left.
func (f TabbedFace) HalfEllipseLeft(forward, side float64, opts ...TurnOpts) TabbedFace {
	return f.addTurn(180, -1, turnMode(opts), true,
		func(t turtle.Turtle, adj float64) turtle.Turtle {
			return t.HalfEllipseLeft(math.Max(forward+adj, 0), math.Max(side+adj, 0))
		})
}
