package biquad

import "math"

// Coefficients holds the six transfer function coefficients of one
// second-order section:
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (A0 + A1*z^-1 + A2*z^-2)
//
// A0 is usually 1. Closed-form designs may leave it unnormalized; the
// runtime divides by A0 before filtering.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A0, A1, A2 float64 // feedback (denominator)
}

// Identity returns the pass-through section (1, 0, 0, 1, 0, 0).
func Identity() Coefficients {
	return Coefficients{B0: 1, A0: 1}
}

// FromRow builds a section from a (b0, b1, b2, a0, a1, a2) row.
func FromRow(row [6]float64) Coefficients {
	return Coefficients{
		B0: row[0], B1: row[1], B2: row[2],
		A0: row[3], A1: row[4], A2: row[5],
	}
}

// Row returns the section as a (b0, b1, b2, a0, a1, a2) row.
func (c Coefficients) Row() [6]float64 {
	return [6]float64{c.B0, c.B1, c.B2, c.A0, c.A1, c.A2}
}

// IsIdentity reports whether c is exactly the pass-through section.
func (c Coefficients) IsIdentity() bool {
	return c == Identity()
}

// Normalized returns c scaled so that A0 == 1. A zero or non-finite A0
// leaves the coefficients unchanged.
func (c Coefficients) Normalized() Coefficients {
	a0 := c.A0
	if a0 == 1 || a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return c
	}

	return Coefficients{
		B0: c.B0 / a0, B1: c.B1 / a0, B2: c.B2 / a0,
		A0: 1, A1: c.A1 / a0, A2: c.A2 / a0,
	}
}

// ScaleNumerator returns c with its numerator multiplied by k.
func (c Coefficients) ScaleNumerator(k float64) Coefficients {
	c.B0 *= k
	c.B1 *= k
	c.B2 *= k

	return c
}

// ProcessSample filters one sample through c using and advancing st.
//
// Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
func (c Coefficients) ProcessSample(st *State, x float64) float64 {
	n := c.Normalized()
	y := n.B0*x + st[0]
	st[0] = n.B1*x - n.A1*y + st[1]
	st[1] = n.B2*x - n.A2*y

	return y
}
