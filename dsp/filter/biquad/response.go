package biquad

import (
	"math"
	"math/cmplx"
)

// ResponseAt returns H(e^jw) at angular frequency w in radians/sample.
func (c Coefficients) ResponseAt(w float64) complex128 {
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := ejw * ejw

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(c.A0, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w

	return num / den
}

// Response returns H at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	return c.ResponseAt(2 * math.Pi * freqHz / sampleRate)
}

// MagnitudeSquared returns |H(e^jw)|^2 without complex arithmetic.
func (c Coefficients) MagnitudeSquared(w float64) float64 {
	cw := 2 * math.Cos(w)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a0, a1, a2 := c.A0, c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (a0-a2)*(a0-a2) + a1*a1 + (a1*(a0+a2)+a0*a2*cw)*cw

	return num / den
}

// ResponseAt returns the cascade response at w: the product of the
// section responses.
func (c Cascade) ResponseAt(w float64) complex128 {
	h := complex(1, 0)
	for i := range c {
		h *= c[i].ResponseAt(w)
	}

	return h
}

// MagnitudeDB returns 20*log10|H(e^jw)| of the cascade.
func (c Cascade) MagnitudeDB(w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.ResponseAt(w)))
}

// ImpulseResponse returns the first n samples of the cascade impulse
// response, starting from zero state.
func (c Cascade) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)
	ir[0] = 1
	c.ProcessBlock(c.NewStates(), ir)

	return ir
}
