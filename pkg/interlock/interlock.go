// Package interlock turns tab/slot patterns into concrete turtle movements
// tracing one edge of a part: a tabbed edge whose teeth protrude from the
// base line, or a slotted edge whose openings are cut astride the center
// line. All functions are pure: they take a turtle positioned at the edge
// start, heading along the edge, and return the advanced turtle.
package interlock

import (
	"errors"
	"fmt"
)

// ErrNegativeEdge is returned when kerf correction plus corner radius
// exceeds the available straight span at some transition, which would
// produce self-intersecting geometry.
var ErrNegativeEdge = errors.New("interlock: negative remaining edge length")

// Kerf is the one-side cut-width correction in drawing units: half of the
// total material removed by the beam, applied independently to each of two
// mating edges. The zero value is the identity (no correction).
type Kerf struct {
	OneSide float64 `json:"one_side"`
}

// ZeroKerf is the identity correction.
var ZeroKerf = Kerf{}

// OneSide returns a kerf from its one-side value.
func OneSide(v float64) Kerf {
	return Kerf{OneSide: v}
}

// Total returns a kerf from the full beam width.
func Total(v float64) Kerf {
	return Kerf{OneSide: v / 2}
}

// Dir selects which side of the travel direction the teeth protrude toward.
type Dir int

const (
	Left Dir = iota
	Right
)

func (d Dir) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// sign returns +1 for Right, -1 for Left, matching the turtle's clockwise-
// positive turn convention.
func (d Dir) sign() float64 {
	if d == Right {
		return 1
	}
	return -1
}

// TabsOptions configures DrawTabs.
type TabsOptions struct {
	// Kerf shifts kerf-eligible transitions along the edge.
	Kerf Kerf
	// TabWidth is how far the teeth protrude from the base line. Required.
	TabWidth float64
	// Dir is the side the teeth protrude toward. Default Left.
	Dir Dir
	// OuterCornersRadius rounds the convex tooth-top corners.
	OuterCornersRadius float64
	// InnerCornersRadius fillets the concave base-level corners.
	InnerCornersRadius float64
	// StartOnTab / EndOnTab start or end the trace on the tooth-top line
	// instead of the base line. Only valid when the pattern's first (last)
	// segment is active; face-level inference guarantees this.
	StartOnTab bool
	EndOnTab   bool
}

// SlotsOptions configures DrawSlots.
type SlotsOptions struct {
	// Kerf shifts kerf-eligible opening transitions along the edge.
	Kerf Kerf
	// SlotWidth is the nominal width of the openings. Required.
	SlotWidth float64
	// SlotWidthKerf narrows the drawn width to compensate the beam. The
	// zero value falls back to Kerf.
	SlotWidthKerf Kerf
}

// SlotWidth returns the kerf-reduced drawn width of the openings, clamped
// at zero.
func SlotWidth(o SlotsOptions) float64 {
	k := o.SlotWidthKerf
	if k == (Kerf{}) {
		k = o.Kerf
	}
	w := o.SlotWidth - 2*k.OneSide
	if w < 0 {
		return 0
	}
	return w
}

// spanTol absorbs floating point noise in remaining-span checks; anything
// more negative than this is a real NegativeEdge failure.
const spanTol = 1e-9

func negativeEdge(what string, at float64) error {
	return fmt.Errorf("%s at %g: %w", what, at, ErrNegativeEdge)
}
