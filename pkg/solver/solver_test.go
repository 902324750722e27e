package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveLinear(t *testing.T) {
	got, err := SolveForZero(func(x float64) float64 { return x - 5 },
		Options{Min: 0, Max: 10, Resolution: 1e-9})
	require.NoError(t, err)
	assert.InDelta(t, 5, got, 1e-8)
}

func TestSolveDecreasing(t *testing.T) {
	got, err := SolveForZero(func(x float64) float64 { return 3 - x },
		Options{Min: 0, Max: 10, Resolution: 1e-9})
	require.NoError(t, err)
	assert.InDelta(t, 3, got, 1e-8)
}

func TestSolveNonlinear(t *testing.T) {
	// Chord length of a unit-radius arc: solve for the angle giving chord 1.
	chord := func(deg float64) float64 {
		return 2*math.Sin(deg*math.Pi/360) - 1
	}
	got, err := SolveForZero(chord, Options{Min: 0, Max: 180, Resolution: 1e-9})
	require.NoError(t, err)
	assert.InDelta(t, 60, got, 1e-6)
}

func TestSolveExactZeroAtMin(t *testing.T) {
	got, err := SolveForZero(func(x float64) float64 { return x },
		Options{Min: 0, Max: 10, Resolution: 1e-9})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestSolveNoSignChange(t *testing.T) {
	_, err := SolveForZero(func(x float64) float64 { return x*x + 1 },
		Options{Min: -5, Max: 5, Resolution: 1e-9})
	require.ErrorIs(t, err, ErrNoZeroFound)
}

func TestSolveFallback(t *testing.T) {
	got, err := SolveForZero(func(x float64) float64 { return 1 },
		Options{Min: 0, Max: 10, Resolution: 1e-9, ValueOnNotFound: Fallback(10)})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestSolveStepCapStillFindsRoot(t *testing.T) {
	// A narrow sign change far from Min is missed by uncapped doubling.
	f := func(x float64) float64 {
		if x > 7.0 && x < 7.2 {
			return -1
		}
		return 1
	}
	got, err := SolveForZero(f, Options{Min: 0, Max: 10, Resolution: 1e-6, StartStep: 0.05, MaxStep: 0.05})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got, 0.06)
}

func TestSolveBadOptions(t *testing.T) {
	_, err := SolveForZero(func(x float64) float64 { return x }, Options{Min: 5, Max: 5, Resolution: 1e-9})
	assert.ErrorIs(t, err, ErrNoZeroFound)

	_, err = SolveForZero(func(x float64) float64 { return x }, Options{Min: 0, Max: 1})
	assert.ErrorIs(t, err, ErrNoZeroFound)
}
