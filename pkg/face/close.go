package face

import (
	"fmt"

	"github.com/chazu/joinery/pkg/geom"
	"github.com/chazu/joinery/pkg/path"
	"github.com/chazu/joinery/pkg/pattern"
)

// ClosedFace is the materialized result of Close: the traced outline plus
// the tab definitions recorded while building.
type ClosedFace struct {
	pth  path.Path
	defs map[string]TabDef
}

// Path returns the closed outline.
func (c ClosedFace) Path() path.Path { return c.pth }

// Tab returns a recorded tab definition.
func (c ClosedFace) Tab(name string) (TabDef, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Fit returns the mating-edge view of a recorded definition.
func (c ClosedFace) Fit(name string) (TabDef, bool) {
	d, ok := c.defs[name]
	if !ok {
		return TabDef{}, false
	}
	return d.Fit(), true
}

// Pat returns the pattern of a recorded definition.
func (c ClosedFace) Pat(name string) (pattern.TabsPattern, bool) {
	d, ok := c.defs[name]
	return d.Pattern, ok
}

// Close materializes the face. It resolves the level at every boundary
// between adjacent tabbed edges, including the wrap-around from the last
// back to the first, traces every segment at its resolved level, verifies
// the pen returned to the start pose, and appends the closing command.
//
// Segments before the first tabbed edge and after the last one belong to
// the same cyclic run and trace at the same level. When that level is Tab
// the whole outline starts and ends on the tooth-top line, offset from the
// nominal start by the tab width toward the tabs side.
func (f TabbedFace) Close() (ClosedFace, error) {
	var hops []int
	for i, s := range f.segs {
		if s.kind == segHop {
			hops = append(hops, i)
		}
	}

	// bound[i] is the level at the start of hop i.
	bound := make([]Level, len(hops))
	for i := range hops {
		prev := hops[(i+len(hops)-1)%len(hops)]
		lvl, err := resolveLevel(f.segs[prev].endPref, f.segs[hops[i]].startPref)
		if err != nil {
			return ClosedFace{}, fmt.Errorf("edge %d: %w", i, err)
		}
		bound[i] = lvl
	}

	startLevel := Base
	if len(hops) > 0 {
		startLevel = bound[0]
	}

	t := f.start
	if startLevel == Tab {
		t = t.JumpStrafeRight(f.opts.TabWidth * dirSign(f.opts.TabsDir))
	}
	want := t

	level := startLevel
	hop := 0
	for _, s := range f.segs {
		switch s.kind {
		case segHop:
			next := bound[(hop+1)%len(hops)]
			var err error
			t, err = s.draw(t, level == Tab, next == Tab)
			if err != nil {
				return ClosedFace{}, fmt.Errorf("edge %d: %w", hop, err)
			}
			level = next
			hop++
		default:
			if level == Tab {
				t = s.tab(t)
			} else {
				t = s.base(t)
			}
		}
	}

	if !t.Position().Near(want.Position(), f.opts.posTol()) ||
		!geom.DegNear(t.Heading(), want.Heading(), f.opts.angleTol()) {
		return ClosedFace{}, fmt.Errorf("ends at %v heading %.6g, started at %v heading %.6g: %w",
			t.Position(), t.Heading(), want.Position(), want.Heading(), ErrFaceNotClosed)
	}

	return ClosedFace{pth: t.Path().ClosePath(), defs: f.defs}, nil
}
