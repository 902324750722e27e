package face

import (
	"sort"

	"github.com/chazu/joinery/pkg/interlock"
	"github.com/chazu/joinery/pkg/pattern"
)

// TabDef is the exact tab parameters recorded by TabsDef: the pattern and
// the drawing options after face defaults and per-edge overrides were
// merged.
type TabDef struct {
	Pattern pattern.TabsPattern
	Options interlock.TabsOptions
}

// Fit returns the definition for the mating edge of an adjoining face: the
// pattern reversed (the other face traverses the shared seam the opposite
// way) and inverted (its teeth fill this edge's gaps). Drawing options are
// carried unchanged.
func (d TabDef) Fit() TabDef {
	return TabDef{
		Pattern: d.Pattern.Reverse().MatchingTabs(),
		Options: d.Options,
	}
}

// Pat returns just the pattern.
func (d TabDef) Pat() pattern.TabsPattern {
	return d.Pattern
}

// Tab returns the raw recorded definition.
func (f TabbedFace) Tab(name string) (TabDef, bool) {
	d, ok := f.defs[name]
	return d, ok
}

// Fit returns the mating-edge view of a recorded definition.
func (f TabbedFace) Fit(name string) (TabDef, bool) {
	d, ok := f.defs[name]
	if !ok {
		return TabDef{}, false
	}
	return d.Fit(), true
}

// Pat returns the pattern of a recorded definition.
func (f TabbedFace) Pat(name string) (pattern.TabsPattern, bool) {
	d, ok := f.defs[name]
	return d.Pattern, ok
}

// TabNames returns the recorded definition names in sorted order.
func (f TabbedFace) TabNames() []string {
	names := make([]string, 0, len(f.defs))
	for n := range f.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
