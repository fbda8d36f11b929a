package prototype

import (
	"errors"
	"fmt"
	"math"
)

// Band selects the response shape of a design.
type Band int

const (
	Lowpass Band = iota
	Highpass
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// ZPK is a digital transfer function
//
//	H(z) = Gain · Π(z - Zeros[i]) / Π(z - Poles[i])
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Order returns the number of poles.
func (z ZPK) Order() int {
	return len(z.Poles)
}

// ErrInvalidDesign is wrapped by every parameter error of this package.
var ErrInvalidDesign = errors.New("prototype: invalid design parameters")

func validate(order int, fc float64, band Band) error {
	if order < 1 {
		return fmt.Errorf("%w: order must be >= 1: %d", ErrInvalidDesign, order)
	}

	if !(fc > 0 && fc < 1) {
		return fmt.Errorf("%w: normalized cutoff must be in (0, 1): %g", ErrInvalidDesign, fc)
	}

	if band != Lowpass && band != Highpass {
		return fmt.Errorf("%w: unknown band: %v", ErrInvalidDesign, band)
	}

	return nil
}

// digital turns an analog prototype with unit cutoff into the digital
// filter for fc and band.
func digital(z, p []complex128, k, fc float64, band Band) (ZPK, error) {
	warp := math.Tan(math.Pi * fc / 2)

	if band == Highpass {
		var ok bool
		if z, p, k, ok = lpToHP(z, p, k); !ok {
			return ZPK{}, fmt.Errorf("%w: degenerate high-pass transform", ErrInvalidDesign)
		}
	}

	out, ok := bilinear(z, p, k, warp)
	if !ok {
		return ZPK{}, fmt.Errorf("%w: degenerate bilinear transform at fc=%g", ErrInvalidDesign, fc)
	}

	return out, nil
}

// lpToHP substitutes s -> 1/s. Missing zeros move to the origin.
func lpToHP(z, p []complex128, k float64) ([]complex128, []complex128, float64, bool) {
	degree := len(p) - len(z)
	if degree < 0 {
		return nil, nil, 0, false
	}

	zh := make([]complex128, 0, len(p))
	for _, r := range z {
		if r == 0 {
			return nil, nil, 0, false
		}

		zh = append(zh, 1/r)
	}

	for range degree {
		zh = append(zh, 0)
	}

	ph := make([]complex128, 0, len(p))
	for _, r := range p {
		if r == 0 {
			return nil, nil, 0, false
		}

		ph = append(ph, 1/r)
	}

	kh := k * real(productNeg(z)/productNeg(p))
	if !finiteNonZero(kh) {
		return nil, nil, 0, false
	}

	return zh, ph, kh, true
}

// bilinear maps s = (z-1)/(warp·(z+1)). Zeros at infinity land on z = -1.
func bilinear(z, p []complex128, k, warp float64) (ZPK, bool) {
	degree := len(p) - len(z)
	if degree < 0 {
		return ZPK{}, false
	}

	w := complex(warp, 0)
	mapRoot := func(r complex128) (complex128, bool) {
		den := 1 - w*r
		if den == 0 {
			return 0, false
		}

		return (1 + w*r) / den, true
	}

	zd := make([]complex128, 0, len(p))
	for _, r := range z {
		m, ok := mapRoot(r)
		if !ok {
			return ZPK{}, false
		}

		zd = append(zd, m)
	}

	for range degree {
		zd = append(zd, -1)
	}

	pd := make([]complex128, 0, len(p))
	for _, r := range p {
		m, ok := mapRoot(r)
		if !ok {
			return ZPK{}, false
		}

		pd = append(pd, m)
	}

	den := productOneMinus(p, warp)
	if den == 0 {
		return ZPK{}, false
	}

	kd := k * math.Pow(warp, float64(degree)) * real(productOneMinus(z, warp)/den)
	if !finiteNonZero(kd) {
		return ZPK{}, false
	}

	return ZPK{Zeros: zd, Poles: pd, Gain: kd}, true
}

func productNeg(v []complex128) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= -x
	}

	return out
}

func productOneMinus(v []complex128, warp float64) complex128 {
	out := complex(1, 0)
	for _, x := range v {
		out *= 1 - complex(warp, 0)*x
	}

	return out
}

func finiteNonZero(x float64) bool {
	return x != 0 && !math.IsNaN(x) && !math.IsInf(x, 0)
}
