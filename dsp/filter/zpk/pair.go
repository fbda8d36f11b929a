package zpk

import (
	"cmp"
	"math"
	"slices"
)

// DefaultTolerance is the pairing tolerance used by ToSOS.
const DefaultTolerance = 1e-12

// Conjugates reports whether b is the complex conjugate of a within tol.
func Conjugates(a, b complex128, tol float64) bool {
	return math.Abs(real(a)-real(b)) <= tol && math.Abs(imag(a)+imag(b)) <= tol
}

// Compare orders complex values by real part. Conjugates compare by
// imaginary part so the negative member sorts first; other values whose
// real parts agree within tol are ordered by imaginary magnitude.
func Compare(a, b complex128, tol float64) int {
	if Conjugates(a, b, tol) {
		return cmp.Compare(imag(a), imag(b))
	}

	if math.Abs(real(a)-real(b)) <= tol {
		if c := cmp.Compare(math.Abs(imag(a)), math.Abs(imag(b))); c != 0 {
			return c
		}

		return cmp.Compare(imag(a), imag(b))
	}

	return cmp.Compare(real(a), real(b))
}

// Pair returns x sorted into conjugate pairs.
//
// The output holds every matched pair (negative imaginary part first),
// followed by non-real values that found no partner, followed by the
// real values (|imag| <= tol) in ascending order. Real values are never
// paired with each other. Empty input is returned as is; input with no
// imaginary parts at all is returned as an unsorted copy.
func Pair(x []complex128, tol float64) []complex128 {
	if len(x) == 0 {
		return x
	}

	if allReal(x) {
		return slices.Clone(x)
	}

	sorted := slices.Clone(x)
	slices.SortStableFunc(sorted, func(a, b complex128) int {
		return Compare(a, b, tol)
	})

	out := make([]complex128, 0, len(x))
	used := make([]bool, len(sorted))

	var loose, reals []complex128

	for i, v := range sorted {
		if used[i] {
			continue
		}

		if isReal(v, tol) {
			reals = append(reals, v)
			continue
		}

		// Repeated roots sort into runs of equal members, so the partner
		// is searched among all values sharing the real part.
		j := partner(sorted, used, i, tol)
		if j < 0 {
			loose = append(loose, v)
			continue
		}

		used[j] = true

		w := sorted[j]
		if imag(w) < imag(v) {
			v, w = w, v
		}

		out = append(out, v, w)
	}

	out = append(out, loose...)

	return append(out, reals...)
}

// PairRows applies Pair to every row independently.
func PairRows(rows [][]complex128, tol float64) [][]complex128 {
	if rows == nil {
		return nil
	}

	out := make([][]complex128, len(rows))
	for i, row := range rows {
		out[i] = Pair(row, tol)
	}

	return out
}

// partner returns the index of the first unused non-real conjugate of
// sorted[i] after i whose real part is within tol, or -1.
func partner(sorted []complex128, used []bool, i int, tol float64) int {
	v := sorted[i]
	for j := i + 1; j < len(sorted) && math.Abs(real(sorted[j])-real(v)) <= tol; j++ {
		if !used[j] && !isReal(sorted[j], tol) && Conjugates(v, sorted[j], tol) {
			return j
		}
	}

	return -1
}

func isReal(v complex128, tol float64) bool {
	return math.Abs(imag(v)) <= tol
}

func allReal(x []complex128) bool {
	for _, v := range x {
		if imag(v) != 0 {
			return false
		}
	}

	return true
}
