// Package freqz evaluates the frequency response of biquad cascades.
//
// Frequencies are angular, in radians per sample, on [0, π]. Response
// evaluates arbitrary grids directly; Uniform evaluates an equally spaced
// grid with FFTs of the coefficient rows. LogGrid builds the log-spaced
// grid used for plotting and MagnitudeDB converts responses to dB with an
// epsilon guard so silent bins stay finite.
package freqz
