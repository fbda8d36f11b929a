package design

import (
	"math"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// Peak designs a resonant peaking section centered near fc.
//
// The analog prototype
//
//	H(s) = (s² + A·wc/q·s + wc²) / (s² + wc/q·s + wc²),  A = 10^(gainDB/20), wc = π·fc
//
// is mapped with the bilinear transform at fs = 1. Gain is 1 at DC and
// Nyquist and A at w = 2·atan(wc/2).
func Peak(fc, gainDB, q float64) biquad.Coefficients {
	if !validEQ(fc, gainDB, q) {
		return biquad.Coefficients{}
	}

	a := dbToLinear(gainDB)
	wc := math.Pi * fc

	return BilinearBiquad(
		[3]float64{1, a * wc / q, wc * wc},
		[3]float64{1, wc / q, wc * wc},
		1,
	)
}

// LowShelf designs a shelf that scales low frequencies by A² with
// A = 10^(gainDB/20), passing the top end at unity.
func LowShelf(fc, gainDB, q float64) biquad.Coefficients {
	return Shelf(fc, gainDB, q, true)
}

// HighShelf is the high-frequency counterpart of LowShelf.
func HighShelf(fc, gainDB, q float64) biquad.Coefficients {
	return Shelf(fc, gainDB, q, false)
}

// Shelf designs a shelving section with the RBJ shelf formulas. The sign
// selector c is -1 for a low shelf and +1 for a high shelf:
//
//	b0 =  A·(A+1 + c(A-1)cos wc + β sin wc)
//	b1 = -2cA·(A-1 + c(A+1)cos wc)
//	b2 =  A·(A+1 + c(A-1)cos wc - β sin wc)
//	a0 =    A+1 - c(A-1)cos wc + β sin wc
//	a1 =  2c·(A-1 - c(A+1)cos wc)
//	a2 =    A+1 - c(A-1)cos wc - β sin wc
//
// with A = 10^(gainDB/20), β = √A/q and wc = π·fc. The plateau gain is A²
// and the gain at wc is A. The row is returned without dividing by a0.
func Shelf(fc, gainDB, q float64, low bool) biquad.Coefficients {
	if !validEQ(fc, gainDB, q) {
		return biquad.Coefficients{}
	}

	c := 1.0
	if low {
		c = -1
	}

	a := dbToLinear(gainDB)
	wc := math.Pi * fc
	cw := math.Cos(wc)
	sw := math.Sin(wc)
	beta := math.Sqrt(a) / q

	return biquad.Coefficients{
		B0: a * (a + 1 + c*(a-1)*cw + beta*sw),
		B1: -c * 2 * a * (a - 1 + c*(a+1)*cw),
		B2: a * (a + 1 + c*(a-1)*cw - beta*sw),
		A0: a + 1 - c*(a-1)*cw + beta*sw,
		A1: c * 2 * (a - 1 - c*(a+1)*cw),
		A2: a + 1 - c*(a-1)*cw - beta*sw,
	}
}

func dbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

func validEQ(fc, gainDB, q float64) bool {
	if !(fc > 0 && fc < 1) {
		return false
	}

	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return false
	}

	return q > 0 && !math.IsInf(q, 0)
}
