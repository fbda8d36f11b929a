// Package ellipticmath holds the Jacobi elliptic function helpers used to
// place elliptic (Cauer) prototype poles and zeros.
//
// Functions take a modulus k (not the parameter m = k²) unless noted, and a
// tolerance that stops the descending Landen recursion.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

const (
	kMin       = 1e-6
	arcSNIter  = 10
	nomeTerms  = 7
	arcSCCheck = 1e-7
)

// Landen computes the descending Landen sequence of moduli for k.
// If tol < 1 it is a convergence threshold; otherwise it is a fixed
// iteration count.
func Landen(k, tol float64) []float64 {
	if k == 0 || k == 1 {
		return []float64{k}
	}

	step := func(k float64) float64 {
		t := k / (1 + math.Sqrt((1-k)*(1+k)))
		return t * t
	}

	var v []float64
	if tol < 1 {
		for k > tol {
			k = step(k)
			v = append(v, k)
		}
		return v
	}

	for range int(tol) {
		k = step(k)
		v = append(v, k)
	}

	return v
}

// LandenK returns K(k) = (π/2)·Π(1+v[i]) for a precomputed Landen sequence.
func LandenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1 + x
	}

	return prod * math.Pi / 2
}

// EllipK returns the complete elliptic integral K(k) and its complement
// K'(k) = K(√(1-k²)).
func EllipK(k, tol float64) (K, Kp float64) {
	kMax := math.Sqrt(1 - kMin*kMin)

	switch {
	case k == 1:
		K = math.Inf(1)
	case k > kMax:
		kp := math.Sqrt((1 - k) * (1 + k))
		l := -math.Log(kp / 4)
		K = l + (l-1)*kp*kp/4
	default:
		K = LandenK(Landen(k, tol))
	}

	switch {
	case k == 0:
		Kp = math.Inf(1)
	case k < kMin:
		l := -math.Log(k / 4)
		Kp = l + (l-1)*k*k/4
	default:
		kp := math.Sqrt((1 - k) * (1 + k))
		Kp = LandenK(Landen(kp, tol))
	}

	return K, Kp
}

// CDE computes cd(uK, k) where u is normalized to the quarter period K.
func CDE(u complex128, k, tol float64) complex128 {
	v := Landen(k, tol)
	w := cmplx.Cos(u * math.Pi / 2)
	for i := len(v) - 1; i >= 0; i-- {
		vi := complex(v[i], 0)
		w = (1 + vi) * w / (1 + vi*w*w)
	}

	return w
}

// SNE computes sn(uK, k) for real u normalized to the quarter period K.
func SNE(u, k, tol float64) float64 {
	v := Landen(k, tol)
	w := math.Sin(u * math.Pi / 2)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + v[i]) * w / (1 + v[i]*w*w)
	}

	return w
}

// SCD returns sn, cn and dn at the unnormalized real argument u. It
// reports false when the modulus is outside [0, 1) or the result is not
// finite.
func SCD(u, k, tol float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	K, _ := EllipK(k, tol)
	if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
		return 0, 0, 0, false
	}

	uNorm := u / K

	sn = SNE(uNorm, k, tol)
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn = math.Sqrt(math.Max(dn2, 0))
	cn = real(CDE(complex(uNorm, 0), k, tol)) * dn

	return sn, cn, dn, true
}

// ArcSN is the inverse of sn for parameter m = k², evaluated by descending
// Landen transformation of the argument.
func ArcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNIter - 1 {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1-kp)/(1+kp))
	}

	K := math.Pi / 2
	for _, kn := range ks[1:] {
		K *= real(1 + kn)
	}

	for i := range len(ks) - 1 {
		den := (1 + ks[i+1]) * (1 + complement(ks[i]*w))
		if den == 0 {
			return cmplx.NaN()
		}

		w = 2 * w / den
	}

	return complex(K, 0) * (2 / math.Pi) * cmplx.Asin(w)
}

// ArcSC1 returns the real solution v of sc(v, √(1-m)) = w, i.e. the
// imaginary part of ArcSN(jw, m). It returns NaN when that solution is not
// purely imaginary.
func ArcSC1(w, m float64) float64 {
	z := ArcSN(complex(0, w), m)
	if math.Abs(real(z)) > arcSCCheck*math.Max(1, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

// Degree solves the degree equation for an order-n elliptic filter with
// selectivity parameter m1, returning the parameter m of the prototype.
// It uses the nome series, which converges quickly for all practical m1.
func Degree(n int, m1, tol float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	K1, K1p := EllipK(math.Sqrt(m1), tol)
	if !(K1 > 0) || !(K1p > 0) || math.IsInf(K1, 0) || math.IsInf(K1p, 0) {
		return math.NaN()
	}

	q1 := math.Exp(-math.Pi * K1p / K1)
	q := math.Pow(q1, 1/float64(n))

	num := 0.0
	for i := range nomeTerms {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < nomeTerms; i++ {
		den += 2 * math.Pow(q, float64(i*i))
	}

	return 16 * q * math.Pow(num/den, 4)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}
