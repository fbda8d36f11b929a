package freqz

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

// ErrPointCount is returned for non-positive grid sizes.
var ErrPointCount = errors.New("freqz: point count must be > 0")

// Response returns the cascade response at each angular frequency in ws,
// along with a copy of ws. An empty cascade has an all-ones response.
func Response(c biquad.Cascade, ws []float64) ([]float64, []complex128) {
	w := append([]float64(nil), ws...)
	h := make([]complex128, len(ws))

	for i := range h {
		h[i] = 1
	}

	for _, sec := range c {
		for i, wi := range w {
			h[i] *= sec.ResponseAt(wi)
		}
	}

	return w, h
}

// Uniform returns the response at n equally spaced frequencies
// w[k] = π·k/n, k = 0..n-1.
//
// The section polynomials are evaluated with a 2n-point FFT of their
// zero-padded coefficient rows.
func Uniform(c biquad.Cascade, n int) ([]float64, []complex128, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrPointCount, n)
	}

	w := make([]float64, n)
	for k := range w {
		w[k] = math.Pi * float64(k) / float64(n)
	}

	size := 2 * n
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, nil, fmt.Errorf("freqz: fft plan: %w", err)
	}

	h := make([]complex128, n)
	for i := range h {
		h[i] = 1
	}

	in := make([]complex128, size)
	num := make([]complex128, size)
	den := make([]complex128, size)

	for _, sec := range c {
		if err := polyFFT(plan, in, num, sec.B0, sec.B1, sec.B2); err != nil {
			return nil, nil, err
		}

		if err := polyFFT(plan, in, den, sec.A0, sec.A1, sec.A2); err != nil {
			return nil, nil, err
		}

		for k := range h {
			h[k] *= num[k] / den[k]
		}
	}

	return w, h, nil
}

// polyFFT writes the DFT of the zero-padded polynomial (p0, p1, p2) to dst.
func polyFFT(plan *algofft.Plan[complex128], scratch, dst []complex128, p0, p1, p2 float64) error {
	clear(scratch)
	scratch[0] = complex(p0, 0)
	scratch[1] = complex(p1, 0)
	scratch[2] = complex(p2, 0)

	if err := plan.Forward(dst, scratch); err != nil {
		return fmt.Errorf("freqz: fft: %w", err)
	}

	return nil
}

// LogGrid returns n angular frequencies spaced logarithmically from wMin
// to π inclusive. It returns nil for n <= 0 or wMin outside (0, π].
func LogGrid(n int, wMin float64) []float64 {
	if n <= 0 || !(wMin > 0 && wMin <= math.Pi) {
		return nil
	}

	if n == 1 {
		return []float64{wMin}
	}

	return floats.LogSpan(make([]float64, n), wMin, math.Pi)
}

// HzGrid returns n log-spaced angular frequencies from minHz to Nyquist
// for sampleRate.
func HzGrid(n int, minHz, sampleRate float64) []float64 {
	if !(sampleRate > 0) {
		return nil
	}

	return LogGrid(n, 2*math.Pi*minHz/sampleRate)
}

// ToHz converts angular frequencies to Hz for sampleRate.
func ToHz(w []float64, sampleRate float64) []float64 {
	out := make([]float64, len(w))
	for i, wi := range w {
		out[i] = wi * sampleRate / (2 * math.Pi)
	}

	return out
}
