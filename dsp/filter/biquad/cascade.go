package biquad

import "fmt"

// State is the two-element delay line of one section.
type State [2]float64

// Cascade is an ordered list of sections; the output of section i feeds
// section i+1.
type Cascade []Coefficients

// NumSections returns the number of sections.
func (c Cascade) NumSections() int {
	return len(c)
}

// Order returns the filter order (2 per section).
func (c Cascade) Order() int {
	return 2 * len(c)
}

// Clone returns a copy of c that shares no memory with it.
func (c Cascade) Clone() Cascade {
	if c == nil {
		return nil
	}

	out := make(Cascade, len(c))
	copy(out, c)

	return out
}

// Rows returns the cascade as (b0, b1, b2, a0, a1, a2) rows.
func (c Cascade) Rows() [][6]float64 {
	rows := make([][6]float64, len(c))
	for i := range c {
		rows[i] = c[i].Row()
	}

	return rows
}

// NewStates returns a zeroed state vector sized for c.
func (c Cascade) NewStates() []State {
	return make([]State, len(c))
}

// ProcessSample cascades x through all sections, advancing states.
// len(states) must equal len(c).
func (c Cascade) ProcessSample(states []State, x float64) float64 {
	mustMatch(len(c), len(states))

	for i := range c {
		x = c[i].ProcessSample(&states[i], x)
	}

	return x
}

// ProcessBlock filters buf in place through the full cascade. states holds
// one entry per section and is advanced so that a signal split across
// several calls produces the same output as one call over the whole signal.
// Zero-alloc.
func (c Cascade) ProcessBlock(states []State, buf []float64) {
	mustMatch(len(c), len(states))

	if len(buf) == 0 {
		return
	}

	for i := range c {
		processBlock(c[i], &states[i], buf)
	}
}

// ResetStates zeros every entry of states.
func ResetStates(states []State) {
	for i := range states {
		states[i] = State{}
	}
}

func mustMatch(sections, states int) {
	if sections != states {
		panic(fmt.Sprintf("biquad: %d states for %d sections", states, sections))
	}
}
