// Package face builds one complete closed outline (a panel of a box, say)
// by sequencing tabbed and plain edges with corner turns between them. It
// layers three things on top of the turtle and interlock packages: a
// dual-level bookkeeping of whether the pen traces the base line or the
// parallel tooth-top line, a named registry of the tab definitions used, and
// a closing validation that the outline returns to its start pose.
//
// A TabbedFace is an immutable builder: every call returns a new value, and
// nothing is drawn until Close materializes the accumulated segments. The
// deferral is required, not an optimization: the level each run of segments
// is traced at depends on the preferences of the tabbed edges on both sides,
// including the wrap-around from the last edge back to the first.
package face

import (
	"errors"
	"fmt"
)

// ErrLevelConflict is returned when two adjacent required level preferences
// disagree.
var ErrLevelConflict = errors.New("face: conflicting required levels")

// ErrFaceNotClosed is returned by Close when the traced outline does not
// return to its start pose within tolerance.
var ErrFaceNotClosed = errors.New("face: outline does not close")

// Level names the two parallel offset lines a tabbed edge alternates
// between: the base edge of the panel and the tooth-top line, separated by
// the tab protrusion width.
type Level int

const (
	Base Level = iota
	Tab
)

func (l Level) String() string {
	if l == Tab {
		return "tab"
	}
	return "base"
}

type prefKind int

const (
	prefNone prefKind = iota
	prefAdvisory
	prefRequired
)

// LevelPref is an optional level preference carried by a tabbed edge at its
// start or end. The zero value is no preference.
type LevelPref struct {
	kind  prefKind
	level Level
}

// NoPref is the absent preference.
var NoPref = LevelPref{}

// Advisory prefers the level but yields to any required preference.
func Advisory(l Level) LevelPref {
	return LevelPref{kind: prefAdvisory, level: l}
}

// Required demands the level; a conflicting required neighbor is an error.
func Required(l Level) LevelPref {
	return LevelPref{kind: prefRequired, level: l}
}

func (p LevelPref) String() string {
	switch p.kind {
	case prefAdvisory:
		return fmt.Sprintf("advisory(%s)", p.level)
	case prefRequired:
		return fmt.Sprintf("required(%s)", p.level)
	default:
		return "none"
	}
}

// resolveLevel infers the level at the boundary between two adjacent
// segments from the end preference of the preceding one and the start
// preference of the following one. A required preference wins; conflicting
// required preferences fail; conflicting advisories resolve to the
// preceding side; no preference at all defaults to Base.
func resolveLevel(end, start LevelPref) (Level, error) {
	if end.kind == prefRequired && start.kind == prefRequired && end.level != start.level {
		return Base, fmt.Errorf("%s meets %s: %w", end, start, ErrLevelConflict)
	}
	if end.kind == prefRequired {
		return end.level, nil
	}
	if start.kind == prefRequired {
		return start.level, nil
	}
	if end.kind == prefAdvisory {
		return end.level, nil
	}
	if start.kind == prefAdvisory {
		return start.level, nil
	}
	return Base, nil
}
