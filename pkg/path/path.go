// Package path defines the ordered path-command list produced by the turtle.
// The command list is the single contract handed to downstream consumers
// (serializers, layout tools); nothing in this module renders or persists it.
//
// A Path is immutable: appending returns a new Path and never aliases the
// receiver's backing storage.
package path

import (
	"fmt"
	"strings"

	"github.com/chazu/joinery/pkg/geom"
)

// CommandKind enumerates the kinds of path commands.
type CommandKind int

const (
	// MoveTo repositions the pen without drawing, starting a new subpath.
	MoveTo CommandKind = iota + 1
	// LineTo draws a straight line to the target point.
	LineTo
	// ArcTo draws an elliptical arc to the target point.
	ArcTo
	// QuadTo draws a quadratic Bézier to the target point through one
	// control point.
	QuadTo
	// CubicTo draws a cubic Bézier to the target point through two control
	// points.
	CubicTo
	// Close closes the current subpath.
	Close
)

func (k CommandKind) String() string {
	switch k {
	case MoveTo:
		return "move"
	case LineTo:
		return "line"
	case ArcTo:
		return "arc"
	case QuadTo:
		return "quad"
	case CubicTo:
		return "cubic"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a single path command. To is the end point for every kind
// except Close. Arc commands additionally carry the ellipse radii, the
// rotation of the ellipse X axis in degrees, and the SVG-style large-arc and
// sweep flags. Curve commands carry one (quad) or two (cubic) control points
// in C1/C2.
type Command struct {
	Kind      CommandKind `json:"kind"`
	To        geom.Point  `json:"to"`
	Radii     geom.Vec2   `json:"radii,omitempty"`
	XRotation float64     `json:"x_rotation,omitempty"`
	LargeArc  bool        `json:"large_arc,omitempty"`
	Sweep     bool        `json:"sweep,omitempty"`
	C1        geom.Point  `json:"c1,omitempty"`
	C2        geom.Point  `json:"c2,omitempty"`
}

func (c Command) String() string {
	switch c.Kind {
	case ArcTo:
		return fmt.Sprintf("arc(%s r=%s rot=%g large=%t sweep=%t)",
			c.To, c.Radii, c.XRotation, c.LargeArc, c.Sweep)
	case QuadTo:
		return fmt.Sprintf("quad(%s c=%s)", c.To, c.C1)
	case CubicTo:
		return fmt.Sprintf("cubic(%s c1=%s c2=%s)", c.To, c.C1, c.C2)
	case Close:
		return "close"
	default:
		return fmt.Sprintf("%s(%s)", c.Kind, c.To)
	}
}

// Path is an immutable ordered list of commands.
type Path struct {
	cmds []Command
}

// New returns an empty path.
func New() Path {
	return Path{}
}

// FromCommands builds a path from a command list. The slice is copied.
func FromCommands(cmds []Command) Path {
	p := Path{cmds: make([]Command, len(cmds))}
	copy(p.cmds, cmds)
	return p
}

// Len returns the number of commands.
func (p Path) Len() int {
	return len(p.cmds)
}

// Commands returns a copy of the command list.
func (p Path) Commands() []Command {
	out := make([]Command, len(p.cmds))
	copy(out, p.cmds)
	return out
}

// At returns the i-th command.
func (p Path) At(i int) Command {
	return p.cmds[i]
}

// Last returns the final command, or ok=false for an empty path.
func (p Path) Last() (Command, bool) {
	if len(p.cmds) == 0 {
		return Command{}, false
	}
	return p.cmds[len(p.cmds)-1], true
}

// CurrentPoint returns the end point of the last command, or ok=false if the
// path is empty. For a trailing Close the current point is the start of the
// closed subpath.
func (p Path) CurrentPoint() (geom.Point, bool) {
	for i := len(p.cmds) - 1; i >= 0; i-- {
		if p.cmds[i].Kind != Close {
			return p.cmds[i].To, true
		}
	}
	return geom.Point{}, false
}

// append returns a new Path with cmd appended. The backing array is copied so
// sibling paths never observe each other's growth.
func (p Path) append(cmd Command) Path {
	cmds := make([]Command, len(p.cmds)+1)
	copy(cmds, p.cmds)
	cmds[len(p.cmds)] = cmd
	return Path{cmds: cmds}
}

// MoveTo appends a pen-up reposition. A MoveTo immediately following another
// MoveTo replaces it; consecutive repositions collapse to the last one.
func (p Path) MoveTo(pt geom.Point) Path {
	if n := len(p.cmds); n > 0 && p.cmds[n-1].Kind == MoveTo {
		cmds := make([]Command, n)
		copy(cmds, p.cmds)
		cmds[n-1] = Command{Kind: MoveTo, To: pt}
		return Path{cmds: cmds}
	}
	return p.append(Command{Kind: MoveTo, To: pt})
}

// LineTo appends a straight line.
func (p Path) LineTo(pt geom.Point) Path {
	return p.append(Command{Kind: LineTo, To: pt})
}

// ArcTo appends an elliptical arc. Radii are the semi-axes, xRotDeg rotates
// the ellipse X axis, and the large-arc and sweep flags follow the SVG arc
// convention (sweep true is clockwise on a Y-down canvas).
func (p Path) ArcTo(pt geom.Point, radii geom.Vec2, xRotDeg float64, largeArc, sweep bool) Path {
	return p.append(Command{
		Kind:      ArcTo,
		To:        pt,
		Radii:     radii,
		XRotation: xRotDeg,
		LargeArc:  largeArc,
		Sweep:     sweep,
	})
}

// QuadTo appends a quadratic Bézier through control point c.
func (p Path) QuadTo(c, pt geom.Point) Path {
	return p.append(Command{Kind: QuadTo, To: pt, C1: c})
}

// CubicTo appends a cubic Bézier through control points c1 and c2.
func (p Path) CubicTo(c1, c2, pt geom.Point) Path {
	return p.append(Command{Kind: CubicTo, To: pt, C1: c1, C2: c2})
}

// ClosePath appends a close command.
func (p Path) ClosePath() Path {
	return p.append(Command{Kind: Close})
}

// Concat returns p followed by o's commands.
func (p Path) Concat(o Path) Path {
	cmds := make([]Command, 0, len(p.cmds)+len(o.cmds))
	cmds = append(cmds, p.cmds...)
	cmds = append(cmds, o.cmds...)
	return Path{cmds: cmds}
}

func (p Path) String() string {
	parts := make([]string, len(p.cmds))
	for i, c := range p.cmds {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
