package zpk

import (
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// ToSOS converts zeros z, poles p and gain k into a cascade of second-order
// sections using DefaultTolerance.
//
// The returned gain is k itself; it is already folded into the numerator
// of section 0.
func ToSOS(z, p []complex128, k float64) (biquad.Cascade, float64, error) {
	return ToSOSTol(z, p, k, DefaultTolerance)
}

// ToSOSTol is ToSOS with an explicit pairing tolerance.
//
// The cascade has max(zeroSections, poleSections) sections and at least
// one. Complex pairs fill sections first, real pairs follow; an odd real
// count is padded with a root at 0. Slots a root set does not reach keep
// the identity polynomial (1, 0, 0).
func ToSOSTol(z, p []complex128, k, tol float64) (biquad.Cascade, float64, error) {
	zc, zr, err := Split(z, tol)
	if err != nil {
		return nil, 0, fmt.Errorf("zeros: %w", err)
	}

	pc, pr, err := Split(p, tol)
	if err != nil {
		return nil, 0, fmt.Errorf("poles: %w", err)
	}

	if len(zr)%2 != 0 {
		zr = append(zr, 0)
	}

	if len(pr)%2 != 0 {
		pr = append(pr, 0)
	}

	n := max(len(zc)+len(zr)/2, len(pc)+len(pr)/2, 1)

	sos := make(biquad.Cascade, n)
	for i := range sos {
		sos[i] = biquad.Identity()
	}

	for i, q := range quadratics(zc, zr) {
		sos[i].B1, sos[i].B2 = q[0], q[1]
	}

	for i, q := range quadratics(pc, pr) {
		sos[i].A1, sos[i].A2 = q[0], q[1]
	}

	sos[0] = sos[0].ScaleNumerator(k)

	return sos, k, nil
}

// quadratics returns the (c1, c2) of z² + c1·z + c2 for every complex root
// followed by every pair of reals. len(reals) must be even.
func quadratics(cplx []complex128, reals []float64) [][2]float64 {
	out := make([][2]float64, 0, len(cplx)+len(reals)/2)

	for _, c := range cplx {
		re, im := real(c), imag(c)
		out = append(out, [2]float64{-2 * re, re*re + im*im})
	}

	for i := 0; i+1 < len(reals); i += 2 {
		r1, r2 := reals[i], reals[i+1]
		out = append(out, [2]float64{-(r1 + r2), r1 * r2})
	}

	return out
}
