// Package prototype designs digital Butterworth and elliptic (Cauer)
// low-pass and high-pass filters as zero/pole/gain triples.
//
// Cutoff frequencies are normalized to Nyquist: 0 < fc < 1. The analog
// prototype is placed at a cutoff of 1 rad/s, transformed to high-pass if
// requested, and mapped to the z-plane by a bilinear transform pre-warped
// so that the digital cutoff lands exactly on fc.
//
// The triples are meant for zpk.ToSOS.
package prototype
