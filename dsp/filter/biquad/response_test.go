package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	for _, c := range []Coefficients{
		lowpassLike(),
		{B0: 1.3, B1: -0.2, B2: 0.4, A0: 2.5, A1: 0.3, A2: 0.7},
	} {
		for _, w := range []float64{0, 0.01, 0.1, 0.5, 1, 2, 3, math.Pi} {
			h := c.ResponseAt(w)
			fromResponse := real(h)*real(h) + imag(h)*imag(h)
			fromClosed := c.MagnitudeSquared(w)
			if !almostEqual(fromClosed, fromResponse, 1e-10) {
				t.Errorf("w=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", w, fromClosed, fromResponse)
			}
		}
	}
}

func TestResponse_HzMatchesAngular(t *testing.T) {
	c := lowpassLike()
	sr := 48000.0
	for _, freq := range []float64{100, 1000, 10000} {
		a := c.Response(freq, sr)
		b := c.ResponseAt(2 * math.Pi * freq / sr)
		if cmplx.Abs(a-b) > 1e-15 {
			t.Errorf("freq=%v: %v != %v", freq, a, b)
		}
	}
}

func TestResponse_Identity(t *testing.T) {
	c := Identity()
	for _, w := range []float64{0, 0.3, 1, math.Pi} {
		if h := c.ResponseAt(w); cmplx.Abs(h-1) > 1e-15 {
			t.Errorf("w=%v: identity response %v", w, h)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A0: 1, A1: a1, A2: a2}
	for _, w := range []float64{0.01, 0.1, 1, 2, 3} {
		if mag := cmplx.Abs(c.ResponseAt(w)); !almostEqual(mag, 1, 1e-10) {
			t.Errorf("w=%v: |H|=%.15f, want 1", w, mag)
		}
	}
}

func TestResponse_DCGain(t *testing.T) {
	c := lowpassLike()
	want := (c.B0 + c.B1 + c.B2) / (c.A0 + c.A1 + c.A2)
	if got := real(c.ResponseAt(0)); !almostEqual(got, want, 1e-12) {
		t.Fatalf("DC gain %v, want %v", got, want)
	}
}

func TestCascade_Response_ProductOfSections(t *testing.T) {
	c := twoSectionCascade()
	for _, w := range []float64{0.01, 0.1, 1} {
		ref := c[0].ResponseAt(w) * c[1].ResponseAt(w)
		if got := c.ResponseAt(w); cmplx.Abs(got-ref) > 1e-12 {
			t.Errorf("w=%v: cascade=%v, product=%v", w, got, ref)
		}
	}
}

func TestCascade_MagnitudeDB_MatchesResponse(t *testing.T) {
	c := twoSectionCascade()
	for _, w := range []float64{0.01, 0.1, 1} {
		want := 20 * math.Log10(cmplx.Abs(c.ResponseAt(w)))
		if got := c.MagnitudeDB(w); !almostEqual(got, want, 1e-10) {
			t.Errorf("w=%v: MagnitudeDB=%v want %v", w, got, want)
		}
	}
}

func TestCascade_ImpulseResponse(t *testing.T) {
	c := twoSectionCascade()
	ir := c.ImpulseResponse(16)

	states := c.NewStates()
	for i, want := range ir {
		var x float64
		if i == 0 {
			x = 1
		}
		if got := c.ProcessSample(states, x); !almostEqual(got, want, eps) {
			t.Errorf("ir[%d]: got %.15f, want %.15f", i, got, want)
		}
	}

	if c.ImpulseResponse(0) != nil || c.ImpulseResponse(-1) != nil {
		t.Error("ImpulseResponse of non-positive length should be nil")
	}
}
