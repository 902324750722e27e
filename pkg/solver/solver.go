// Package solver provides the 1-D root finder used to back-solve unknown
// turtle distances: given a function measuring how far a constructed shape
// misses a desired outcome, SolveForZero finds the parameter value where the
// miss changes sign.
package solver

import (
	"errors"
	"fmt"
)

// ErrNoZeroFound is returned when the search interval is exhausted without
// bracketing a sign change and no fallback value is configured.
var ErrNoZeroFound = errors.New("solver: no sign change found")

// Options bounds the search. Min, Max and Resolution are required.
type Options struct {
	// Min and Max bound the search interval.
	Min, Max float64
	// Resolution is the accepted uncertainty of the returned value.
	Resolution float64
	// StartStep is the initial expansion step. Defaults to Resolution.
	StartStep float64
	// MaxStep caps the doubling expansion step. Defaults to Max-Min.
	MaxStep float64
	// ValueOnNotFound, when set, is returned instead of ErrNoZeroFound.
	ValueOnNotFound *float64
}

// Fallback is a convenience for Options.ValueOnNotFound.
func Fallback(v float64) *float64 {
	return &v
}

// SolveForZero walks from Min toward Max with a doubling step (capped at
// MaxStep) until f changes sign, then bisects the bracketing interval until
// its width is below Resolution. Exact zeros encountered along the way are
// returned immediately.
func SolveForZero(f func(float64) float64, o Options) (float64, error) {
	if o.Max <= o.Min {
		return 0, fmt.Errorf("solve for zero: interval [%g, %g]: %w", o.Min, o.Max, ErrNoZeroFound)
	}
	if o.Resolution <= 0 {
		return 0, fmt.Errorf("solve for zero: resolution %g: %w", o.Resolution, ErrNoZeroFound)
	}
	step := o.StartStep
	if step <= 0 {
		step = o.Resolution
	}
	maxStep := o.MaxStep
	if maxStep <= 0 {
		maxStep = o.Max - o.Min
	}

	x := o.Min
	fx := f(x)
	if fx == 0 {
		return x, nil
	}
	for x < o.Max {
		next := x + step
		if next > o.Max {
			next = o.Max
		}
		fn := f(next)
		if fn == 0 {
			return next, nil
		}
		if (fx < 0) != (fn < 0) {
			return bisect(f, x, next, fx, o.Resolution), nil
		}
		x, fx = next, fn
		step *= 2
		if step > maxStep {
			step = maxStep
		}
	}
	if o.ValueOnNotFound != nil {
		return *o.ValueOnNotFound, nil
	}
	return 0, fmt.Errorf("solve for zero: f(%g)=%g, f(%g)=%g: %w",
		o.Min, f(o.Min), o.Max, f(o.Max), ErrNoZeroFound)
}

// bisect narrows a bracketing interval [lo, hi] with f(lo) of known sign
// until the interval is below resolution, returning its midpoint.
func bisect(f func(float64) float64, lo, hi, flo float64, resolution float64) float64 {
	for hi-lo > resolution {
		mid := (lo + hi) / 2
		fm := f(mid)
		if fm == 0 {
			return mid
		}
		if (flo < 0) == (fm < 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
