// Package peq implements a parametric equalizer as a chain of filter
// stages.
//
// A [Stage] designs one filter (flat or brickwall low/high-pass, low or
// high shelf, peak) as a cascade of second-order sections and owns the
// delay state of those sections. A [Chain] runs the enabled stages in
// order over blocks of samples and applies the state policy for edits:
// enabling a stage starts it from silence, and a replacement stage keeps
// the old filter memory only if its type and section count are unchanged.
//
// Frequencies are normalized to Nyquist: a cutoff fc in (0, 1) maps to
// fc·sampleRate/2 Hz.
//
// A Chain is not safe for concurrent use. Parameter edits are expected
// between FilterBlock calls.
package peq
