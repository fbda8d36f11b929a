// Package testutil holds signal generators and tolerance checks shared by
// the DSP tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// MaxAbsDiff returns max|a[i]-b[i]|. It panics if the lengths differ.
func MaxAbsDiff(a, b []float64) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	return floats.Distance(a, b, math.Inf(1))
}

// RequireSliceNearlyEqual fails t unless got and want have equal length
// and every element differs by at most eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if !floats.EqualLengths(got, want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	if d := MaxAbsDiff(got, want); d > eps {
		i := worstIndex(got, want)
		t.Fatalf("index %d: got %v, want %v (max diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

func worstIndex(got, want []float64) int {
	worst, at := -1.0, 0
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > worst || math.IsNaN(d) {
			worst, at = d, i
		}
	}

	return at
}

// RequireComplexSliceNearlyEqual fails t unless |got[i]-want[i]| <= eps
// for every i.
func RequireComplexSliceNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := cmplx.Abs(got[i] - want[i]); !(d <= eps) {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf in data.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
