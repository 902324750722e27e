package design

import (
	"fmt"

	"github.com/chazu/joinery/pkg/path"
)

// Severity indicates whether a finding blocks export or is merely
// informational.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result.
type Finding struct {
	Face     string // which face has the problem, empty if design-level
	Message  string
	Severity Severity
}

func (f Finding) String() string {
	if f.Face == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] face %q: %s", f.Severity, f.Face, f.Message)
}

// Validate runs read-only checks over the design: an empty design and
// degenerate face outlines are warnings, an outline with no drawable
// commands is an error. An empty slice means the design is clean.
func (d *Design) Validate() []Finding {
	var out []Finding
	if d.Len() == 0 {
		out = append(out, Finding{Message: "design has no faces", Severity: SeverityWarning})
		return out
	}
	for _, name := range d.order {
		f := d.faces[name]
		p := f.Path()
		if !hasDrawable(p) {
			out = append(out, Finding{Face: name, Message: "outline has no drawable commands", Severity: SeverityError})
			continue
		}
		bb, ok := p.BoundingBox()
		if !ok || bb.Width() == 0 || bb.Height() == 0 {
			out = append(out, Finding{Face: name, Message: "outline is degenerate (zero width or height)", Severity: SeverityWarning})
		}
	}
	return out
}

func hasDrawable(p path.Path) bool {
	for _, c := range p.Commands() {
		switch c.Kind {
		case path.MoveTo, path.Close:
		default:
			return true
		}
	}
	return false
}
