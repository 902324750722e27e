package face

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/joinery/pkg/interlock"
	"github.com/chazu/joinery/pkg/pattern"
	"github.com/chazu/joinery/pkg/path"
)

func hasPoint(p path.Path, x, y float64) bool {
	for _, c := range p.Commands() {
		if math.Abs(c.To.X-x) < 1e-9 && math.Abs(c.To.Y-y) < 1e-9 {
			return true
		}
	}
	return false
}

func tabsOf(t *testing.T, lengths ...float64) pattern.TabsPattern {
	t.Helper()
	p := pattern.NewTabs()
	var err error
	for i, l := range lengths {
		if i%2 == 0 {
			p, err = p.Tab(l)
		} else {
			p, err = p.Base(l)
		}
		require.NoError(t, err)
	}
	return p
}

func baseFirst(t *testing.T, lengths ...float64) pattern.TabsPattern {
	t.Helper()
	return tabsOf(t, append([]float64{0}, lengths...)...)
}

func TestPlainRectangleCloses(t *testing.T) {
	c, err := New(Options{TabWidth: 3}).
		NoTabs(100).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(50).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(100).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(50).Right(90, TurnOpts{Level: TurnBase}).
		Close()
	require.NoError(t, err)

	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 50, bb.Width(), 1e-9)
	assert.InDelta(t, 100, bb.Height(), 1e-9)

	last, _ := c.Path().Last()
	assert.Equal(t, path.Close, last.Kind)
}

func TestAutoTurnsOffsetTheCorners(t *testing.T) {
	// Base-level edges with tab-level corners: the pen line runs inside the
	// corner's tooth-top line, so each corner leg is pulled back one tab
	// width. The outline still closes and keeps the nominal footprint.
	c, err := New(Options{TabWidth: 3}).
		NoTabs(100).Right(90).
		NoTabs(50).Right(90).
		NoTabs(100).Right(90).
		NoTabs(50).Right(90).
		Close()
	require.NoError(t, err)

	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 50, bb.Width(), 1e-9)
	assert.InDelta(t, 100, bb.Height(), 1e-9)
	assert.True(t, hasPoint(c.Path(), -3, -97),
		"corner leg must pull back by the tab width")
}

func TestTabbedSquareClosesAtTabLevel(t *testing.T) {
	// Every edge starts and ends on a tooth, so all four boundaries resolve
	// to the tab level and the whole outline runs on the tooth-top square,
	// with the gap floors strafing inward.
	p := tabsOf(t, 10, 10, 10)
	f := New(Options{TabWidth: 3})
	for i := 0; i < 4; i++ {
		f = f.Tabs(p).Right(90)
	}
	c, err := f.Close()
	require.NoError(t, err)

	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 30, bb.Width(), 1e-9)
	assert.InDelta(t, 30, bb.Height(), 1e-9)
}

func TestMatchingEdgesClose(t *testing.T) {
	// A rectangle whose tabbed edge would mate with its recorded fit: the
	// fit pattern starts with a gap, so the remaining corners stay on the
	// base line.
	p := baseFirst(t, 5, 10, 5) // base, tab, base
	f := New(Options{TabWidth: 3}).
		TabsDef("seam", p).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(40).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(20).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(40).Right(90, TurnOpts{Level: TurnBase})

	c, err := f.Close()
	require.NoError(t, err)

	def, ok := c.Tab("seam")
	require.True(t, ok)
	fit, ok := c.Fit("seam")
	require.True(t, ok)

	assert.True(t, def.Pattern.Pattern().Invert().Equal(fit.Pattern.Pattern().Reverse()),
		"fit must be the reversed complement")

	pat, ok := c.Pat("seam")
	require.True(t, ok)
	assert.InDelta(t, 20, pat.Length(), 1e-9)
}

func TestFitMatchedRectangleCloses(t *testing.T) {
	// Opposite edges carry a tab definition and its recorded fit. The two
	// fit patterns are tooth-bounded, so their shared boundary resolves to
	// the tab level and the corner between them runs at tab level while the
	// corners themselves sit on the base line; the compensating corner legs
	// keep the rectangle closed.
	a := baseFirst(t, 5, 10, 5)
	b := baseFirst(t, 8, 14, 8)
	c, err := New(Options{TabWidth: 3}).
		TabsDef("a", a).Right(90, TurnOpts{Level: TurnBase}).
		TabsDef("b", b).Right(90, TurnOpts{Level: TurnBase}).
		Tabs(TabDef{Pattern: a}.Fit().Pattern).Right(90, TurnOpts{Level: TurnBase}).
		Tabs(TabDef{Pattern: b}.Fit().Pattern).Right(90, TurnOpts{Level: TurnBase}).
		Close()
	require.NoError(t, err)

	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 36, bb.Width(), 1e-9)
	assert.InDelta(t, 26, bb.Height(), 1e-9)

	// Shrinking one edge past the position tolerance breaks the closure.
	short := baseFirst(t, 8, 14, 7.9)
	_, err = New(Options{TabWidth: 3}).
		TabsDef("a", a).Right(90, TurnOpts{Level: TurnBase}).
		Tabs(short).Right(90, TurnOpts{Level: TurnBase}).
		Tabs(TabDef{Pattern: a}.Fit().Pattern).Right(90, TurnOpts{Level: TurnBase}).
		Tabs(TabDef{Pattern: b}.Fit().Pattern).Right(90, TurnOpts{Level: TurnBase}).
		Close()
	require.ErrorIs(t, err, ErrFaceNotClosed)
}

func TestFitMatchedRectangleAutoCorners(t *testing.T) {
	// Same rectangle with auto corner levels: three corners resolve to the
	// tab level while the pen runs on the base line, shortening their legs,
	// and the fit pair's tab-level boundary turns plainly. The shortened
	// legs cancel against the tab-level entry so the outline closes inside
	// the nominal footprint.
	a := baseFirst(t, 5, 10, 5)
	b := baseFirst(t, 8, 14, 8)
	c, err := New(Options{TabWidth: 3}).
		TabsDef("a", a).Right(90).
		TabsDef("b", b).Right(90).
		Tabs(TabDef{Pattern: a}.Fit().Pattern).Right(90).
		Tabs(TabDef{Pattern: b}.Fit().Pattern).Right(90).
		Close()
	require.NoError(t, err)

	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 30, bb.Width(), 1e-9)
	assert.InDelta(t, 20, bb.Height(), 1e-9)
}

func TestKerfEdgesStillClose(t *testing.T) {
	// Kerf moves transitions along the edge but never its endpoints, so a
	// face and its fit-matched mate both close with the same footprint.
	p := baseFirst(t, 5, 10, 5)
	k := interlock.OneSide(0.4)
	build := func(pat pattern.TabsPattern) (ClosedFace, error) {
		return New(Options{TabWidth: 3, Kerf: k}).
			Tabs(pat).Right(90, TurnOpts{Level: TurnBase}).
			NoTabs(40).Right(90, TurnOpts{Level: TurnBase}).
			NoTabs(20).Right(90, TurnOpts{Level: TurnBase}).
			NoTabs(40).Right(90, TurnOpts{Level: TurnBase}).
			Close()
	}

	c, err := build(p)
	require.NoError(t, err)
	mate, err := build(TabDef{Pattern: p}.Fit().Pattern)
	require.NoError(t, err)

	bb, _ := c.Path().BoundingBox()
	mb, _ := mate.Path().BoundingBox()
	assert.InDelta(t, bb.Height(), mb.Height(), 1e-9)
}

func TestUTurnAtTabLevel(t *testing.T) {
	// A 180 turn cannot use the tangent offset; the pen strafes across to
	// the tooth-top line, turns there, and strafes back out to the return
	// edge's base line.
	c, err := New(Options{TabWidth: 3}).
		NoTabs(10).Right(180).
		NoTabs(10).Right(180).
		Close()
	require.NoError(t, err)

	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 6, bb.Width(), 1e-9)
	assert.InDelta(t, 10, bb.Height(), 1e-9)
}

func TestBoxModeWidensShallowCorners(t *testing.T) {
	hexagon := func(box bool) ClosedFace {
		f := New(Options{TabWidth: 3, BoxMode: box})
		for i := 0; i < 6; i++ {
			f = f.NoTabs(20).Right(60, TurnOpts{Level: TurnBase})
		}
		c, err := f.Close()
		require.NoError(t, err)
		return c
	}

	plain, _ := hexagon(false).Path().BoundingBox()
	boxed, _ := hexagon(true).Path().BoundingBox()
	assert.Greater(t, boxed.Width(), plain.Width(),
		"box mode must push shallow corners outward")

	// Right-angle corners need no correction.
	square := func(box bool) ClosedFace {
		f := New(Options{TabWidth: 3, BoxMode: box})
		for i := 0; i < 4; i++ {
			f = f.NoTabs(20).Right(90, TurnOpts{Level: TurnBase})
		}
		c, err := f.Close()
		require.NoError(t, err)
		return c
	}
	p, _ := square(false).Path().BoundingBox()
	b, _ := square(true).Path().BoundingBox()
	assert.InDelta(t, p.Width(), b.Width(), 1e-9)
}

func TestArcCornerRadiusAdjust(t *testing.T) {
	// A tab-level arc corner drawn while the pen runs on the base line
	// adjusts its radius by the tab width; the rounded rectangle still
	// closes.
	f := New(Options{TabWidth: 3})
	for i := 0; i < 4; i++ {
		f = f.NoTabs(30).ArcRight(90, 5)
	}
	c, err := f.Close()
	require.NoError(t, err)

	// The corner's line lies outside the turn, so the base pen line traces
	// the concentric inner arc: radius 5 less the tab width, and each side
	// spans 30 + 2*2.
	bb, ok := c.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 34, bb.Width(), 1e-9)
	assert.InDelta(t, 34, bb.Height(), 1e-9)
}

func TestNotClosedError(t *testing.T) {
	_, err := New(Options{TabWidth: 3}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).
		Close()
	require.ErrorIs(t, err, ErrFaceNotClosed)

	// Right lengths, wrong final heading.
	_, err = New(Options{TabWidth: 3}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).
		Close()
	require.ErrorIs(t, err, ErrFaceNotClosed)
}

func TestLevelConflict(t *testing.T) {
	p := baseFirst(t, 5, 10, 5)
	_, err := New(Options{TabWidth: 3}).
		NoTabs(20).
		Tabs(p, EdgeOptions{Start: Required(Tab)}).
		Close()
	require.ErrorIs(t, err, ErrLevelConflict)
}

func TestInvalidStartOverrideSurfacesDrawError(t *testing.T) {
	// Forcing a tab-level boundary onto an edge whose pattern starts with a
	// gap cannot be drawn.
	p := baseFirst(t, 5, 10, 5)
	f := New(Options{TabWidth: 3}).
		Tabs(p, EdgeOptions{Start: Required(Tab), End: Required(Tab)}).Right(90).
		Tabs(p, EdgeOptions{Start: Required(Tab), End: Required(Tab)}).Right(90).
		Tabs(p, EdgeOptions{Start: Required(Tab), End: Required(Tab)}).Right(90).
		Tabs(p, EdgeOptions{Start: Required(Tab), End: Required(Tab)}).Right(90)
	_, err := f.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tab level")
}

func TestEdgeOptionOverrides(t *testing.T) {
	k := interlock.OneSide(0.5)
	d := interlock.Right
	r := 1.5
	f := New(Options{TabWidth: 3, Kerf: interlock.OneSide(0.1)})
	got := f.resolveEdge(EdgeOptions{Kerf: &k, Dir: &d, OuterCornersRadius: &r})

	assert.Equal(t, 0.5, got.Kerf.OneSide)
	assert.Equal(t, interlock.Right, got.Dir)
	assert.Equal(t, 1.5, got.OuterCornersRadius)
	assert.Equal(t, 0.0, got.InnerCornersRadius)
	assert.Equal(t, 3.0, got.TabWidth)

	// Without overrides the face defaults flow through.
	got = f.resolveEdge(EdgeOptions{})
	assert.Equal(t, 0.1, got.Kerf.OneSide)
	assert.Equal(t, interlock.Left, got.Dir)
}

func TestResolveLevel(t *testing.T) {
	lvl, err := resolveLevel(Required(Tab), Advisory(Base))
	require.NoError(t, err)
	assert.Equal(t, Tab, lvl)

	lvl, err = resolveLevel(Advisory(Tab), Advisory(Base))
	require.NoError(t, err)
	assert.Equal(t, Tab, lvl, "conflicting advisories resolve to the preceding side")

	lvl, err = resolveLevel(NoPref, NoPref)
	require.NoError(t, err)
	assert.Equal(t, Base, lvl)

	_, err = resolveLevel(Required(Tab), Required(Base))
	require.ErrorIs(t, err, ErrLevelConflict)
}

func TestTabNames(t *testing.T) {
	p := baseFirst(t, 5, 10, 5)
	f := New(Options{TabWidth: 3}).
		TabsDef("zig", p).Right(90, TurnOpts{Level: TurnBase}).
		TabsDef("alpha", p.Reverse(), EdgeOptions{Start: Required(Base), End: Required(Base)})

	assert.Equal(t, []string{"alpha", "zig"}, f.TabNames())

	_, ok := f.Tab("missing")
	assert.False(t, ok)
	_, ok = f.Fit("missing")
	assert.False(t, ok)
}

func TestLint(t *testing.T) {
	assert.NotEmpty(t, New(Options{TabWidth: 3}).Lint(), "empty face")

	f := New(Options{}).NoTabs(10)
	warns := f.Lint()
	require.NotEmpty(t, warns)
	assert.Contains(t, warns[0].String(), "tab width")

	// Disagreeing advisory boundary is flagged, preceding edge wins.
	p := tabsOf(t, 10, 10, 10)
	f = New(Options{TabWidth: 3}).
		Tabs(p).
		Tabs(p, EdgeOptions{Start: Advisory(Base)})
	found := false
	for _, w := range f.Lint() {
		if w.Edge >= 0 {
			found = true
		}
	}
	assert.True(t, found, "advisory conflict not flagged")

	// A clean face lints clean.
	clean := New(Options{TabWidth: 3}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase}).
		NoTabs(10).Right(90, TurnOpts{Level: TurnBase})
	assert.Empty(t, clean.Lint())
}
