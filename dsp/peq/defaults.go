package peq

import "fmt"

// DefaultLayout lists the types and center frequencies in Hz of the
// stages built by DefaultChain.
var DefaultLayout = []struct {
	Type Type
	Hz   float64
}{
	{HighpassBrickwall, 100},
	{Peak, 1000},
	{Peak, 3000},
	{Peak, 5000},
	{LowpassBrickwall, 15000},
}

// DefaultChain returns the five-stage equalizer layout for sampleRate:
// a brickwall high-pass, three peaks and a brickwall low-pass, all
// disabled with 0 dB gain and Q 1.
func DefaultChain(sampleRate float64, opts ...StageOption) (*Chain, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidParams, sampleRate)
	}

	c := NewChain()
	for i, l := range DefaultLayout {
		s, err := NewStage(l.Type, HzToCutoff(l.Hz, sampleRate), 0, 1, false, opts...)
		if err != nil {
			return nil, fmt.Errorf("peq: default stage %d: %w", i, err)
		}

		if err := c.Append(s); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// HzToCutoff converts a frequency in Hz to the Nyquist-normalized cutoff.
func HzToCutoff(hz, sampleRate float64) float64 {
	return hz * 2 / sampleRate
}

// CutoffToHz converts a Nyquist-normalized cutoff to Hz.
func CutoffToHz(cutoff, sampleRate float64) float64 {
	return cutoff * sampleRate / 2
}
