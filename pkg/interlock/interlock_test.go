package interlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/joinery/pkg/geom"
	"github.com/chazu/joinery/pkg/path"
	"github.com/chazu/joinery/pkg/pattern"
	"github.com/chazu/joinery/pkg/turtle"
)

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

func TestProgressionPositions(t *testing.T) {
	// base 10, tab 10, base 10, tab 10, base 10
	p := baseFirst(t, 10, 10, 10, 10, 10).Pattern()

	ts := progression(p, false, false, OneSide(0.5))
	require.Len(t, ts, 4)

	// The first drawn transition never shifts; later rises shift forward
	// and falls shift backward, so active spans only tighten.
	assert.InDelta(t, 10, ts[0].pos, 1e-12)
	assert.True(t, ts[0].rise)
	assert.InDelta(t, 19.5, ts[1].pos, 1e-12)
	assert.False(t, ts[1].rise)
	assert.InDelta(t, 30.5, ts[2].pos, 1e-12)
	assert.InDelta(t, 39.5, ts[3].pos, 1e-12)
}

func TestProgressionBoundaries(t *testing.T) {
	p := tabsOf(t, 10, 10, 10).Pattern() // tab, base, tab

	ts := progression(p, false, false, ZeroKerf)
	require.Len(t, ts, 4)
	assert.True(t, ts[0].boundary)
	assert.True(t, ts[0].rise)
	assert.InDelta(t, 0, ts[0].pos, 1e-12)
	assert.True(t, ts[3].boundary)
	assert.False(t, ts[3].rise)
	assert.InDelta(t, 30, ts[3].pos, 1e-12)

	// Suppressed when the trace already starts and ends on the tab line.
	ts = progression(p, true, true, ZeroKerf)
	require.Len(t, ts, 2)
	assert.False(t, ts[0].boundary)
}

func TestDrawTabsSimpleEdge(t *testing.T) {
	pat := tabsOf(t, 10, 10) // tab 10, base 10
	tt, err := DrawTabs(turtle.New(), pat, TabsOptions{TabWidth: 3})
	require.NoError(t, err)

	// The turtle advances the full edge length and returns to the base line.
	assert.True(t, tt.Position().Near(geom.Pt(0, -20), 1e-9),
		"end position = %v", tt.Position())
	assert.InDelta(t, 0, tt.Heading(), 1e-9)

	// Teeth protrude left of travel (toward -X when heading up).
	bb, ok := tt.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, -3, bb.Min.X, 1e-9)
	assert.InDelta(t, 0, bb.Max.X, 1e-9)
}

func TestDrawTabsDirRight(t *testing.T) {
	pat := tabsOf(t, 10, 10)
	tt, err := DrawTabs(turtle.New(), pat, TabsOptions{TabWidth: 3, Dir: Right})
	require.NoError(t, err)

	bb, ok := tt.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 0, bb.Min.X, 1e-9)
	assert.InDelta(t, 3, bb.Max.X, 1e-9)
}

func TestDrawTabsKerfTightensTeeth(t *testing.T) {
	pat := baseFirst(t, 10, 10, 10, 10, 10)

	run := func(k float64) []path.Command {
		tt, err := DrawTabs(turtle.New(), pat, TabsOptions{TabWidth: 3, Kerf: OneSide(k)})
		require.NoError(t, err)
		return tt.Path().Commands()
	}

	topLen := func(cmds []path.Command) float64 {
		// Sum the lengths of line runs on the tooth-top line x = -3.
		var total float64
		for i := 1; i < len(cmds); i++ {
			if cmds[i].Kind == path.LineTo && cmds[i].To.X == -3 && cmds[i-1].To.X == -3 {
				total += cmds[i-1].To.Distance(cmds[i].To)
			}
		}
		return total
	}

	loose := topLen(run(0))
	tight := topLen(run(0.5))
	assert.InDelta(t, 20, loose, 1e-9)
	assert.InDelta(t, 18.5, tight, 1e-9, "kerf must shrink drawn teeth")
}

func TestDrawTabsStartOnTab(t *testing.T) {
	pat := tabsOf(t, 10, 10)

	tt, err := DrawTabs(turtle.New(), pat, TabsOptions{TabWidth: 3, StartOnTab: true})
	require.NoError(t, err)
	// No opening flank: the trace starts on the tooth top and steps down at
	// the tooth's end, landing one tab width to the base side.
	assert.True(t, tt.Position().Near(geom.Pt(3, -20), 1e-9),
		"end position = %v", tt.Position())

	_, err = DrawTabs(turtle.New(), baseFirst(t, 5, 10), TabsOptions{TabWidth: 3, StartOnTab: true})
	require.Error(t, err, "StartOnTab with an inactive first segment")
}

func TestDrawTabsEndOnTab(t *testing.T) {
	pat := tabsOf(t, 10, 10, 10) // ends active
	tt, err := DrawTabs(turtle.New(), pat, TabsOptions{TabWidth: 3, EndOnTab: true})
	require.NoError(t, err)
	assert.True(t, tt.Position().Near(geom.Pt(-3, -30), 1e-9),
		"end position = %v", tt.Position())

	_, err = DrawTabs(turtle.New(), tabsOf(t, 10, 10), TabsOptions{TabWidth: 3, EndOnTab: true})
	require.Error(t, err, "EndOnTab with an inactive last segment")
}

func TestDrawTabsRoundedCorners(t *testing.T) {
	pat := baseFirst(t, 5, 10, 5) // base 5, tab 10, base 5
	tt, err := DrawTabs(turtle.New(), pat, TabsOptions{
		TabWidth:           3,
		OuterCornersRadius: 1,
		InnerCornersRadius: 1,
	})
	require.NoError(t, err)

	assert.True(t, tt.Position().Near(geom.Pt(0, -20), 1e-9),
		"end position = %v", tt.Position())

	arcs := 0
	for _, c := range tt.Path().Commands() {
		if c.Kind == path.ArcTo {
			arcs++
		}
	}
	assert.Equal(t, 4, arcs, "two transitions, two quarter arcs each")
}

func TestDrawTabsBoundaryCornersStaySharp(t *testing.T) {
	pat := tabsOf(t, 10, 10) // starts active: boundary rise at 0
	tt, err := DrawTabs(turtle.New(), pat, TabsOptions{
		TabWidth:           3,
		OuterCornersRadius: 1,
		InnerCornersRadius: 1,
	})
	require.NoError(t, err)

	// The boundary transition is drawn square; only the interior fall gets
	// its two arcs.
	arcs := 0
	for _, c := range tt.Path().Commands() {
		if c.Kind == path.ArcTo {
			arcs++
		}
	}
	assert.Equal(t, 2, arcs)
}

func TestDrawTabsNegativeEdge(t *testing.T) {
	// The fillet radius exceeds the straight run before the first tooth.
	_, err := DrawTabs(turtle.New(), baseFirst(t, 1, 10, 5), TabsOptions{
		TabWidth:           3,
		InnerCornersRadius: 2,
	})
	require.ErrorIs(t, err, ErrNegativeEdge)

	// Radii together exceed the tab width, leaving a negative flank.
	_, err = DrawTabs(turtle.New(), baseFirst(t, 5, 10, 5), TabsOptions{
		TabWidth:           3,
		OuterCornersRadius: 2,
		InnerCornersRadius: 2,
	})
	require.ErrorIs(t, err, ErrNegativeEdge)

	// Kerf shift walks the closing transition before the opening one.
	_, err = DrawTabs(turtle.New(), baseFirst(t, 5, 1, 5, 1, 5), TabsOptions{
		TabWidth: 3,
		Kerf:     OneSide(2),
	})
	require.ErrorIs(t, err, ErrNegativeEdge)
}

func TestDrawTabsValidation(t *testing.T) {
	_, err := DrawTabs(turtle.New(), tabsOf(t, 10), TabsOptions{})
	require.Error(t, err, "zero tab width")

	empty := pattern.NewTabs()
	tt, err := DrawTabs(turtle.New(), empty, TabsOptions{TabWidth: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, tt.Path().Len())
}

func TestDrawSlotsRectangles(t *testing.T) {
	sp, err := pattern.NewSlots().Base(5)
	require.NoError(t, err)
	sp, err = sp.Slot(10)
	require.NoError(t, err)
	sp, err = sp.Base(5)
	require.NoError(t, err)

	tt, err := DrawSlots(turtle.New(), sp, SlotsOptions{SlotWidth: 4})
	require.NoError(t, err)

	// The turtle crosses the edge on the center line, pose preserved.
	assert.True(t, tt.Position().Near(geom.Pt(0, -20), 1e-9),
		"end position = %v", tt.Position())
	assert.InDelta(t, 0, tt.Heading(), 1e-9)
	assert.True(t, tt.IsPenDown())

	// One opening: a MoveTo plus four sides.
	cmds := tt.Path().Commands()
	require.Len(t, cmds, 5)

	bb, ok := tt.Path().BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, -2, bb.Min.X, 1e-9)
	assert.InDelta(t, 2, bb.Max.X, 1e-9)
	assert.InDelta(t, -15, bb.Min.Y, 1e-9)
	assert.InDelta(t, -5, bb.Max.Y, 1e-9)
}

func TestDrawSlotsKerfShrinksOpenings(t *testing.T) {
	sp, err := pattern.NewSlots().Base(5)
	require.NoError(t, err)
	sp, err = sp.Slot(10)
	require.NoError(t, err)
	sp, err = sp.Base(5)
	require.NoError(t, err)

	tt, err := DrawSlots(turtle.New(), sp, SlotsOptions{SlotWidth: 4, Kerf: OneSide(0.5)})
	require.NoError(t, err)

	bb, ok := tt.Path().BoundingBox()
	require.True(t, ok)
	// Width narrows by the kerf on both sides; the opening's closing end
	// pulls in while its kerf-ineligible start stays.
	assert.InDelta(t, 3, bb.Width(), 1e-9)
	assert.InDelta(t, -14.5, bb.Min.Y, 1e-9)
	assert.InDelta(t, -5, bb.Max.Y, 1e-9)
}

func TestDrawSlotsEmptyAndSolid(t *testing.T) {
	tt, err := DrawSlots(turtle.New(), pattern.NewSlots(), SlotsOptions{SlotWidth: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, tt.Path().Len())

	// A pattern with no openings just advances.
	solid, err := pattern.NewSlots().Base(12)
	require.NoError(t, err)
	tt, err = DrawSlots(turtle.New(), solid, SlotsOptions{SlotWidth: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, tt.Path().Len())
	assert.True(t, tt.Position().Near(geom.Pt(0, -12), 1e-9))
}

func TestSlotWidthHelper(t *testing.T) {
	assert.InDelta(t, 4, SlotWidth(SlotsOptions{SlotWidth: 4}), 1e-12)
	assert.InDelta(t, 3, SlotWidth(SlotsOptions{SlotWidth: 4, Kerf: OneSide(0.5)}), 1e-12)
	// An explicit width kerf overrides the edge kerf.
	assert.InDelta(t, 3.8, SlotWidth(SlotsOptions{
		SlotWidth: 4, Kerf: OneSide(0.5), SlotWidthKerf: OneSide(0.1),
	}), 1e-12)
	// Clamped at zero.
	assert.InDelta(t, 0, SlotWidth(SlotsOptions{SlotWidth: 1, Kerf: OneSide(2)}), 1e-12)
}

func TestKerfConstructors(t *testing.T) {
	assert.Equal(t, 0.25, Total(0.5).OneSide)
	assert.Equal(t, 0.5, OneSide(0.5).OneSide)
	assert.Equal(t, Kerf{}, ZeroKerf)
}
