package prototype

import (
	"math"
	"math/cmplx"
)

// Butterworth designs an order-n maximally flat filter with its -3 dB
// point at the normalized cutoff fc.
func Butterworth(order int, fc float64, band Band) (ZPK, error) {
	if err := validate(order, fc, band); err != nil {
		return ZPK{}, err
	}

	return digital(nil, butterworthPoles(order), 1, fc, band)
}

// butterworthPoles returns the left-half-plane poles on the unit circle,
// conjugates adjacent.
func butterworthPoles(n int) []complex128 {
	p := make([]complex128, 0, n)
	for m := -n + 1; m < n; m += 2 {
		p = append(p, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*n))))
	}

	return p
}
