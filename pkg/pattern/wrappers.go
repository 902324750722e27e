package pattern

// TabsPattern is a pattern whose active segments are protruding teeth.
type TabsPattern struct {
	pat Pattern
}

// Tabs wraps a pattern as a tabs layout.
func Tabs(p Pattern) TabsPattern {
	return TabsPattern{pat: p}
}

// NewTabs returns an empty tabs pattern.
func NewTabs() TabsPattern {
	return TabsPattern{}
}

// Tab appends a tooth of the given length.
func (t TabsPattern) Tab(length float64) (TabsPattern, error) {
	p, err := t.pat.Add(true, length)
	if err != nil {
		return TabsPattern{}, err
	}
	return TabsPattern{pat: p}, nil
}

// Base appends a flat base run of the given length.
func (t TabsPattern) Base(length float64) (TabsPattern, error) {
	p, err := t.pat.Add(false, length)
	if err != nil {
		return TabsPattern{}, err
	}
	return TabsPattern{pat: p}, nil
}

// Pattern returns the underlying pattern.
func (t TabsPattern) Pattern() Pattern {
	return t.pat
}

// Length returns the total edge length.
func (t TabsPattern) Length() float64 {
	return t.pat.Length()
}

// Reverse returns the tabs traversed from the other end.
func (t TabsPattern) Reverse() TabsPattern {
	return TabsPattern{pat: t.pat.Reverse()}
}

// MatchingSlots reinterprets the same pattern as the slot openings that
// receive these teeth, for a crossing piece. Identity-preserving: the
// pattern itself is unchanged.
func (t TabsPattern) MatchingSlots() SlotsPattern {
	return SlotsPattern{pat: t.pat}
}

// MatchingTabs returns the complementary tabs for the mating edge of a
// second piece: teeth where this edge has gaps and vice versa.
func (t TabsPattern) MatchingTabs() TabsPattern {
	return TabsPattern{pat: t.pat.Invert()}
}

func (t TabsPattern) String() string {
	return "tabs" + t.pat.String()
}

// SlotsPattern is a pattern whose active segments are cut openings.
type SlotsPattern struct {
	pat Pattern
}

// Slots wraps a pattern as a slots layout.
func Slots(p Pattern) SlotsPattern {
	return SlotsPattern{pat: p}
}

// NewSlots returns an empty slots pattern.
func NewSlots() SlotsPattern {
	return SlotsPattern{}
}

// Slot appends an opening of the given length.
func (s SlotsPattern) Slot(length float64) (SlotsPattern, error) {
	p, err := s.pat.Add(true, length)
	if err != nil {
		return SlotsPattern{}, err
	}
	return SlotsPattern{pat: p}, nil
}

// Base appends a closed run of the given length.
func (s SlotsPattern) Base(length float64) (SlotsPattern, error) {
	p, err := s.pat.Add(false, length)
	if err != nil {
		return SlotsPattern{}, err
	}
	return SlotsPattern{pat: p}, nil
}

// Pattern returns the underlying pattern.
func (s SlotsPattern) Pattern() Pattern {
	return s.pat
}

// Length returns the total edge length.
func (s SlotsPattern) Length() float64 {
	return s.pat.Length()
}

// Reverse returns the slots traversed from the other end.
func (s SlotsPattern) Reverse() SlotsPattern {
	return SlotsPattern{pat: s.pat.Reverse()}
}

// MatchingTabs reinterprets the openings as the teeth that insert into them.
// Identity-preserving: the pattern itself is unchanged.
func (s SlotsPattern) MatchingTabs() TabsPattern {
	return TabsPattern{pat: s.pat}
}

func (s SlotsPattern) String() string {
	return "slots" + s.pat.String()
}

// SlidePair splits an edge of the given total length into two complementary
// slot patterns for a slide-fit joint: the first is open for the leading
// firstLen units and closed for the rest, the second is its inversion. Cut
// into two crossing pieces, the pieces slide together along the shared line.
func SlidePair(length, firstLen float64) (SlotsPattern, SlotsPattern, error) {
	if firstLen < 0 || length < firstLen {
		return SlotsPattern{}, SlotsPattern{}, ErrInvalidLength
	}
	a, err := FromSegments(
		Segment{Active: true, Length: firstLen},
		Segment{Active: false, Length: length - firstLen},
	)
	if err != nil {
		return SlotsPattern{}, SlotsPattern{}, err
	}
	return SlotsPattern{pat: a}, SlotsPattern{pat: a.Invert()}, nil
}
