package zpk

import (
	"fmt"
	"math"
)

// Split pairs z and separates it into complex and real roots.
//
// Values with |imag| <= tol are taken from the tail of the paired sequence
// and returned as reals, in the order Pair left them. The bound is
// inclusive so that tol = 0 still classifies exact reals as real. The rest
// must consist of adjacent conjugate pairs; cplx holds the
// positive-imaginary member of each. A value without a conjugate partner
// yields an error wrapping ErrConjugateSymmetry.
func Split(z []complex128, tol float64) (cplx []complex128, reals []float64, err error) {
	if len(z) == 0 {
		return nil, nil, nil
	}

	paired := Pair(z, tol)

	n := len(paired)
	for n > 0 && math.Abs(imag(paired[n-1])) <= tol {
		n--
	}

	if n < len(paired) {
		reals = make([]float64, 0, len(paired)-n)
		for _, v := range paired[n:] {
			reals = append(reals, real(v))
		}
	}

	if n%2 != 0 {
		return nil, nil, fmt.Errorf("%w: odd number of complex values (%d)", ErrConjugateSymmetry, n)
	}

	if n > 0 {
		cplx = make([]complex128, 0, n/2)
	}

	for i := 0; i < n; i += 2 {
		a, b := paired[i], paired[i+1]
		if !Conjugates(a, b, tol) {
			return nil, nil, fmt.Errorf("%w: %v has no conjugate within %g", ErrConjugateSymmetry, a, tol)
		}

		cplx = append(cplx, b)
	}

	return cplx, reals, nil
}
