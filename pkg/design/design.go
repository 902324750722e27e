// Package design collects the output of one evaluation: the named closed
// faces of a project, in definition order, ready to be laid out or
// exported. A Design is built by the scripting engine but is just as usable
// straight from Go code.
package design

import (
	"errors"
	"fmt"

	"github.com/chazu/joinery/pkg/face"
)

// ErrDuplicateFace is returned when a face name is defined twice.
var ErrDuplicateFace = errors.New("design: duplicate face name")

// Design is an ordered registry of named closed faces. It is not safe for
// concurrent mutation; evaluations build a fresh Design each.
type Design struct {
	faces map[string]face.ClosedFace
	order []string
}

// New returns an empty design.
func New() *Design {
	return &Design{faces: make(map[string]face.ClosedFace)}
}

// AddFace registers a closed face under name. Names must be unique and
// non-empty.
func (d *Design) AddFace(name string, f face.ClosedFace) error {
	if name == "" {
		return errors.New("design: empty face name")
	}
	if _, ok := d.faces[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicateFace)
	}
	d.faces[name] = f
	d.order = append(d.order, name)
	return nil
}

// Face returns the face registered under name.
func (d *Design) Face(name string) (face.ClosedFace, bool) {
	f, ok := d.faces[name]
	return f, ok
}

// Names returns the face names in definition order.
func (d *Design) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of faces.
func (d *Design) Len() int {
	return len(d.order)
}
