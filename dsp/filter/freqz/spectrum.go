package freqz

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
)

// Spectrum returns the one-sided level spectrum of block in dB along with
// the frequency of each bin in Hz. With M = len(block)/2 + 1 bins the
// level is 20·log10(|X[k]/M| + Epsilon) and bin k is placed at
// k·sampleRate/(2M), the plot scaling of the equalizer display.
// Any block length of at least 2 is accepted.
func Spectrum(block []float64, sampleRate float64) (freqs, db []float64, err error) {
	n := len(block)
	if n < 2 {
		return nil, nil, fmt.Errorf("freqz: spectrum block length must be >= 2: %d", n)
	}

	if !(sampleRate > 0) {
		return nil, nil, fmt.Errorf("freqz: sample rate must be > 0: %g", sampleRate)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("freqz: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, x := range block {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("freqz: fft: %w", err)
	}

	bins := n/2 + 1
	scaled := make([]complex128, bins)
	inv := complex(1/float64(bins), 0)
	for k := range scaled {
		scaled[k] = out[k] * inv
	}

	db = Magnitude(scaled)
	freqs = make([]float64, bins)
	for k := range db {
		db[k] = 20 * math.Log10(db[k]+Epsilon)
		freqs[k] = float64(k) * sampleRate / float64(2*bins)
	}

	return freqs, db, nil
}
