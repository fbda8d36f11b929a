package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-peq/internal/ellipticmath"
)

const (
	ellipticTol = 2.2e-16
	machineEps  = 2.220446049250313e-16
)

// Elliptic designs an order-n Cauer filter with rippleDB of passband ripple
// and at least stopbandDB of stopband attenuation. The passband edge is at
// the normalized cutoff fc, where the response is -rippleDB.
//
// Even orders start the passband at -rippleDB (DC for low-pass), odd
// orders at 0 dB.
func Elliptic(order int, rippleDB, stopbandDB, fc float64, band Band) (ZPK, error) {
	if err := validate(order, fc, band); err != nil {
		return ZPK{}, err
	}

	if !(rippleDB > 0) || math.IsInf(rippleDB, 0) {
		return ZPK{}, fmt.Errorf("%w: passband ripple must be > 0 dB: %g", ErrInvalidDesign, rippleDB)
	}

	if !(stopbandDB > rippleDB) || math.IsInf(stopbandDB, 0) {
		return ZPK{}, fmt.Errorf("%w: stopband attenuation must exceed ripple: %g <= %g",
			ErrInvalidDesign, stopbandDB, rippleDB)
	}

	z, p, k, ok := ellipticAnalog(order, rippleDB, stopbandDB)
	if !ok {
		return ZPK{}, fmt.Errorf("%w: no elliptic prototype for order %d, %g dB ripple, %g dB stopband",
			ErrInvalidDesign, order, rippleDB, stopbandDB)
	}

	return digital(z, p, k, fc, band)
}

// ellipticAnalog places the zeros and poles of the unit-cutoff analog
// elliptic low-pass with Jacobi elliptic functions.
func ellipticAnalog(order int, rippleDB, stopbandDB float64) ([]complex128, []complex128, float64, bool) {
	epsSq := math.Expm1(math.Ln10 * rippleDB / 10)
	stopSq := math.Expm1(math.Ln10 * stopbandDB / 10)

	m1 := epsSq / stopSq
	if !(m1 > 0 && m1 < 1) {
		return nil, nil, 0, false
	}

	if order == 1 {
		p := -math.Sqrt(1 / epsSq)
		return nil, []complex128{complex(p, 0)}, -p, true
	}

	m := ellipticmath.Degree(order, m1, ellipticTol)
	if !(m > 0 && m < 1) {
		return nil, nil, 0, false
	}

	kmod := math.Sqrt(m)
	capK, _ := ellipticmath.EllipK(kmod, ellipticTol)
	k1K, _ := ellipticmath.EllipK(math.Sqrt(m1), ellipticTol)
	if !finiteNonZero(capK) || !finiteNonZero(k1K) {
		return nil, nil, 0, false
	}

	half := (order + 1) / 2
	sn := make([]float64, 0, half)
	cn := make([]float64, 0, half)
	dn := make([]float64, 0, half)
	zeros := make([]complex128, 0, order)

	for j := 1 - order%2; j < order; j += 2 {
		s, c, d, ok := ellipticmath.SCD(float64(j)*capK/float64(order), kmod, ellipticTol)
		if !ok {
			return nil, nil, 0, false
		}

		sn, cn, dn = append(sn, s), append(cn, c), append(dn, d)

		if math.Abs(s) > machineEps {
			zr := complex(0, 1) / complex(kmod*s, 0)
			zeros = append(zeros, zr, cmplx.Conj(zr))
		}
	}

	r := ellipticmath.ArcSC1(1/math.Sqrt(epsSq), m1)
	if !(r > 0) || math.IsInf(r, 0) {
		return nil, nil, 0, false
	}

	v0 := capK * r / (float64(order) * k1K)

	sv, cv, dv, ok := ellipticmath.SCD(v0, math.Sqrt(1-m), ellipticTol)
	if !ok {
		return nil, nil, 0, false
	}

	base := make([]complex128, len(sn))
	norm2 := 0.0

	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		if math.Abs(den) <= machineEps {
			return nil, nil, 0, false
		}

		base[i] = -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)
		norm2 += real(base[i] * cmplx.Conj(base[i]))
	}

	// The odd-order real pole has no conjugate.
	realThr := 0.0
	if order%2 == 1 {
		realThr = machineEps * math.Sqrt(norm2)
	}

	poles := make([]complex128, 0, order)
	for _, b := range base {
		if math.Abs(imag(b)) > realThr {
			poles = append(poles, b, cmplx.Conj(b))
		} else {
			poles = append(poles, complex(real(b), 0))
		}
	}

	gain := real(productNeg(poles) / productNeg(zeros))
	if order%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	if !finiteNonZero(gain) {
		return nil, nil, 0, false
	}

	return zeros, poles, gain, true
}
