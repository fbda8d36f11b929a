// Package design provides closed-form single-section equalizer designs.
//
// Frequencies are normalized to Nyquist (0 < fc < 1) and gains are in dB.
// LowShelf, HighShelf and Peak return one biquad.Coefficients section each;
// shelves keep their raw A0 so callers see the unnormalized row.
//
// Higher-order Butterworth and elliptic designs live in design/prototype
// and are converted to sections with dsp/filter/zpk.
package design
