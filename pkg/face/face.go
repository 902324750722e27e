package face

import (
	"github.com/chazu/joinery/pkg/interlock"
	"github.com/chazu/joinery/pkg/pattern"
	"github.com/chazu/joinery/pkg/turtle"
)

// Options configures a face. TabWidth is required; everything else has a
// usable zero value.
type Options struct {
	// TabWidth is the tab protrusion width, the distance between the Base
	// and Tab lines.
	TabWidth float64
	// TabsDir is the side of the travel direction the teeth protrude
	// toward, for every edge of this face. Default Left.
	TabsDir interlock.Dir
	// Kerf is the default kerf for every tabbed edge.
	Kerf interlock.Kerf
	// OuterCornersRadius and InnerCornersRadius are the default tooth
	// corner radii for every tabbed edge.
	OuterCornersRadius float64
	InnerCornersRadius float64
	// BoxMode enables the per-turn tooth-overlap correction for faces that
	// meet neighboring tabbed faces at their corners.
	BoxMode bool
	// PosTolerance and AngleTolerance bound the closing check. Defaults
	// 1e-6 units and 1e-6 degrees.
	PosTolerance   float64
	AngleTolerance float64
}

func (o Options) posTol() float64 {
	if o.PosTolerance > 0 {
		return o.PosTolerance
	}
	return 1e-6
}

func (o Options) angleTol() float64 {
	if o.AngleTolerance > 0 {
		return o.AngleTolerance
	}
	return 1e-6
}

type segKind int

const (
	segDual segKind = iota
	segHop
)

// faceSeg is the closed sum of face segment kinds. A Dual segment is an
// ordinary move valid at either level, carrying one render function per
// level. A Hop is a tabbed edge that may move the pen between levels,
// carrying a level preference for each of its ends.
type faceSeg struct {
	kind segKind

	// Dual.
	base func(turtle.Turtle) turtle.Turtle
	tab  func(turtle.Turtle) turtle.Turtle

	// Hop.
	draw      func(t turtle.Turtle, startTab, endTab bool) (turtle.Turtle, error)
	startPref LevelPref
	endPref   LevelPref
}

// TabbedFace is the immutable face builder. The zero value is not usable;
// construct with New or NewAt.
type TabbedFace struct {
	opts  Options
	start turtle.Turtle
	segs  []faceSeg
	defs  map[string]TabDef
}

// New starts a face at the origin, heading up, pen down.
func New(o Options) TabbedFace {
	return NewAt(turtle.New(), o)
}

// NewAt starts a face at the given turtle's pose. The turtle's path so far
// is carried into the face's output.
func NewAt(t turtle.Turtle, o Options) TabbedFace {
	return TabbedFace{opts: o, start: t}
}

// Options returns the face options.
func (f TabbedFace) Options() Options {
	return f.opts
}

// addSeg returns a copy of f with seg appended.
func (f TabbedFace) addSeg(seg faceSeg) TabbedFace {
	segs := make([]faceSeg, len(f.segs)+1)
	copy(segs, f.segs)
	segs[len(f.segs)] = seg
	f.segs = segs
	return f
}

// dual appends a segment that renders the same way on either level.
func (f TabbedFace) dual(fn func(turtle.Turtle) turtle.Turtle) TabbedFace {
	return f.addSeg(faceSeg{kind: segDual, base: fn, tab: fn})
}

// Forward advances d units along the current line, at whatever level the
// surrounding tabbed edges put the pen on.
func (f TabbedFace) Forward(d float64) TabbedFace {
	return f.dual(func(t turtle.Turtle) turtle.Turtle { return t.Forward(d) })
}

// Back retreats d units.
func (f TabbedFace) Back(d float64) TabbedFace {
	return f.Forward(-d)
}

// NoTabs draws a plain straight edge of the given length on the base line.
// Unlike Forward it is a real edge: it requires Base level at both ends.
func (f TabbedFace) NoTabs(length float64) TabbedFace {
	return f.addSeg(faceSeg{
		kind: segHop,
		draw: func(t turtle.Turtle, startTab, endTab bool) (turtle.Turtle, error) {
			return t.Forward(length), nil
		},
		startPref: Required(Base),
		endPref:   Required(Base),
	})
}

// EdgeOptions overrides the face defaults for a single tabbed edge. Nil
// pointer fields keep the face default; zero Start/End preferences derive
// from the pattern.
type EdgeOptions struct {
	Kerf               *interlock.Kerf
	Dir                *interlock.Dir
	OuterCornersRadius *float64
	InnerCornersRadius *float64
	// Start and End override the derived level preferences of this edge.
	Start LevelPref
	End   LevelPref
}

// resolveEdge merges edge overrides onto the face defaults.
func (f TabbedFace) resolveEdge(o EdgeOptions) interlock.TabsOptions {
	out := interlock.TabsOptions{
		Kerf:               f.opts.Kerf,
		TabWidth:           f.opts.TabWidth,
		Dir:                f.opts.TabsDir,
		OuterCornersRadius: f.opts.OuterCornersRadius,
		InnerCornersRadius: f.opts.InnerCornersRadius,
	}
	if o.Kerf != nil {
		out.Kerf = *o.Kerf
	}
	if o.Dir != nil {
		out.Dir = *o.Dir
	}
	if o.OuterCornersRadius != nil {
		out.OuterCornersRadius = *o.OuterCornersRadius
	}
	if o.InnerCornersRadius != nil {
		out.InnerCornersRadius = *o.InnerCornersRadius
	}
	return out
}

// edgePrefs derives the level preferences of a tabbed edge from its
// pattern: an end that touches an active segment can stay on the tooth top
// across the corner (advisory Tab), an end that touches a gap must sit on
// the gap floor (required Base).
func edgePrefs(p pattern.Pattern, o EdgeOptions) (start, end LevelPref) {
	segs := p.Segments()
	start, end = Required(Base), Required(Base)
	if len(segs) > 0 && segs[0].Active {
		start = Advisory(Tab)
	}
	if len(segs) > 0 && segs[len(segs)-1].Active {
		end = Advisory(Tab)
	}
	if o.Start != NoPref {
		start = o.Start
	}
	if o.End != NoPref {
		end = o.End
	}
	return start, end
}

// Tabs draws one tabbed edge following the pattern.
func (f TabbedFace) Tabs(pat pattern.TabsPattern, opts ...EdgeOptions) TabbedFace {
	var o EdgeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	drawOpts := f.resolveEdge(o)
	start, end := edgePrefs(pat.Pattern(), o)
	return f.addSeg(faceSeg{
		kind: segHop,
		draw: func(t turtle.Turtle, startTab, endTab bool) (turtle.Turtle, error) {
			io := drawOpts
			io.StartOnTab = startTab
			io.EndOnTab = endTab
			return interlock.DrawTabs(t, pat, io)
		},
		startPref: start,
		endPref:   end,
	})
}

// TabsDef draws one tabbed edge exactly like Tabs and records the pattern
// and resolved drawing parameters under name for later lookup via Tab, Fit,
// and Pat.
func (f TabbedFace) TabsDef(name string, pat pattern.TabsPattern, opts ...EdgeOptions) TabbedFace {
	var o EdgeOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	f = f.Tabs(pat, o)
	defs := make(map[string]TabDef, len(f.defs)+1)
	for k, v := range f.defs {
		defs[k] = v
	}
	defs[name] = TabDef{Pattern: pat, Options: f.resolveEdge(o)}
	f.defs = defs
	return f
}
