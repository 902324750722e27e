package face

import "fmt"

// Warning is a single non-blocking lint finding about a face under
// construction.
type Warning struct {
	Edge    int // index of the tabbed edge, -1 for face-level findings
	Message string
}

func (w Warning) String() string {
	if w.Edge < 0 {
		return fmt.Sprintf("face: %s", w.Message)
	}
	return fmt.Sprintf("edge %d: %s", w.Edge, w.Message)
}

// Lint reports advisory findings that Close would silently tolerate: a face
// with no segments, boundaries where two advisory preferences disagree, and
// TabWidth left at zero while tabbed edges exist. An empty slice means
// nothing noteworthy. Lint never mutates the face.
func (f TabbedFace) Lint() []Warning {
	var out []Warning
	if len(f.segs) == 0 {
		out = append(out, Warning{Edge: -1, Message: "no segments"})
		return out
	}

	var hops []int
	for i, s := range f.segs {
		if s.kind == segHop {
			hops = append(hops, i)
		}
	}
	if len(hops) == 0 {
		return out
	}

	if f.opts.TabWidth <= 0 {
		out = append(out, Warning{Edge: -1, Message: "tab width is not positive"})
	}

	for i := range hops {
		prev := f.segs[hops[(i+len(hops)-1)%len(hops)]]
		cur := f.segs[hops[i]]
		if prev.endPref.kind == prefAdvisory && cur.startPref.kind == prefAdvisory &&
			prev.endPref.level != cur.startPref.level {
			out = append(out, Warning{
				Edge:    i,
				Message: fmt.Sprintf("%s meets %s, preceding edge wins", prev.endPref, cur.startPref),
			})
		}
	}
	return out
}
