package design

import (
	"math"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// BilinearTransform converts an analog second-order polynomial
// c0*s^2 + c1*s + c2 into the digital z^-1-domain polynomial
// d0 + d1*z^-1 + d2*z^-2 using s = 2·fs·(1 - z^-1)/(1 + z^-1).
//
// The result is not normalized.
func BilinearTransform(sCoeffs [3]float64, sampleRate float64) [3]float64 {
	k := 2 * sampleRate
	c0, c1, c2 := sCoeffs[0], sCoeffs[1], sCoeffs[2]

	return [3]float64{
		c0*k*k + c1*k + c2,
		-2*c0*k*k + 2*c2,
		c0*k*k - c1*k + c2,
	}
}

// BilinearBiquad transforms the analog section num(s)/den(s) and divides
// both digital polynomials by the leading denominator coefficient.
//
// A zero or non-finite leading coefficient yields the zero section.
func BilinearBiquad(num, den [3]float64, sampleRate float64) biquad.Coefficients {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return biquad.Coefficients{}
	}

	b := BilinearTransform(num, sampleRate)
	a := BilinearTransform(den, sampleRate)

	a0 := a[0]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b[0] / a0,
		B1: b[1] / a0,
		B2: b[2] / a0,
		A0: 1,
		A1: a[1] / a0,
		A2: a[2] / a0,
	}
}
