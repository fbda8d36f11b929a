// Package biquad provides second-order section (biquad) runtime primitives.
//
// A [Coefficients] value is one immutable section row
// (b0, b1, b2, a0, a1, a2). Sections are cascaded in a [Cascade]; the
// delay-line memory of each section lives in a separate [State] so that the
// owner of a cascade decides where filter memory is kept and when it is
// reset. Processing uses Direct Form II Transposed, which makes a [State]
// interchangeable with the per-section initial conditions of a transposed
// direct-form filter.
//
// Coefficient design lives in dsp/filter/design and dsp/filter/zpk.
package biquad
