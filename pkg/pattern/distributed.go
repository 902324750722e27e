package pattern

import (
	"fmt"
	"math"
)

// DistributedOpts parameterizes Distributed. Exactly one of TabEveryLen and
// NumTabs must be set (non-zero). Zero values take the documented defaults.
type DistributedOpts struct {
	// Length is the total edge length to fill. Required.
	Length float64
	// TabEveryLen derives the tooth count from a target density: one tooth
	// per this many units of edge, floored.
	TabEveryLen float64
	// NumTabs fixes the tooth count outright, taken as given.
	NumTabs int
	// MinNumTabs floors the tooth count derived from TabEveryLen. Default 2.
	MinNumTabs int
	// TabToSkipRatio is the tooth:gap length ratio when TabLength is not
	// fixed. Default 1.
	TabToSkipRatio float64
	// TabLength, when non-zero, fixes every tooth's length and leaves only
	// the gap length to solve for.
	TabLength float64
	// StartWithTab and EndWithTab make the edge begin/end with a tooth
	// instead of a gap.
	StartWithTab bool
	EndWithTab   bool
}

// Distributed solves for a uniform tooth length and gap length such that the
// requested count of teeth and the boundary-dependent count of gaps sum
// exactly to Length, honoring either the fixed TabLength or the
// TabToSkipRatio, and returns the resulting tabs pattern.
func Distributed(o DistributedOpts) (TabsPattern, error) {
	if o.Length <= 0 {
		return TabsPattern{}, fmt.Errorf("distributed: length %g: %w", o.Length, ErrInvalidLength)
	}
	minTabs := o.MinNumTabs
	if minTabs == 0 {
		minTabs = 2
	}
	ratio := o.TabToSkipRatio
	if ratio == 0 {
		ratio = 1
	}

	numTabs := o.NumTabs
	if numTabs < 0 {
		return TabsPattern{}, fmt.Errorf("distributed: %d teeth: %w", numTabs, ErrInvalidCount)
	}
	if numTabs == 0 {
		if o.TabEveryLen <= 0 {
			return TabsPattern{}, fmt.Errorf("distributed: need NumTabs or TabEveryLen: %w", ErrInvalidCount)
		}
		numTabs = int(math.Floor(o.Length / o.TabEveryLen))
		if numTabs < minTabs {
			numTabs = minTabs
		}
	}

	numGaps := numTabs - 1
	if !o.StartWithTab {
		numGaps++
	}
	if !o.EndWithTab {
		numGaps++
	}
	if numGaps < 0 {
		return TabsPattern{}, fmt.Errorf("distributed: %d teeth, %d gaps: %w", numTabs, numGaps, ErrInvalidCount)
	}

	var tabLen, gapLen float64
	switch {
	case numGaps == 0:
		// Single tooth spanning the edge; a fixed tab length must agree.
		tabLen = o.Length / float64(numTabs)
		if o.TabLength != 0 && math.Abs(o.TabLength-tabLen) > 1e-9 {
			return TabsPattern{}, fmt.Errorf("distributed: no gaps to absorb %g leftover: %w",
				o.Length-o.TabLength*float64(numTabs), ErrInvalidCount)
		}
	case o.TabLength != 0:
		tabLen = o.TabLength
		gapLen = (o.Length - tabLen*float64(numTabs)) / float64(numGaps)
	default:
		gapLen = o.Length / (float64(numTabs)*ratio + float64(numGaps))
		tabLen = gapLen * ratio
	}
	if tabLen < 0 || gapLen < 0 {
		return TabsPattern{}, fmt.Errorf("distributed: tooth %g, gap %g: %w", tabLen, gapLen, ErrInvalidLength)
	}

	tp := NewTabs()
	var err error
	if !o.StartWithTab {
		if tp, err = tp.Base(gapLen); err != nil {
			return TabsPattern{}, err
		}
	}
	for i := 0; i < numTabs; i++ {
		if i > 0 {
			if tp, err = tp.Base(gapLen); err != nil {
				return TabsPattern{}, err
			}
		}
		if tp, err = tp.Tab(tabLen); err != nil {
			return TabsPattern{}, err
		}
	}
	if !o.EndWithTab {
		if tp, err = tp.Base(gapLen); err != nil {
			return TabsPattern{}, err
		}
	}
	return tp, nil
}
