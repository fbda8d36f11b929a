package peq

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

var (
	// ErrIndex is returned for stage indices outside the chain.
	ErrIndex = errors.New("peq: stage index out of range")
	// ErrStateLength is returned by ApplyState for a vector whose length
	// does not match the enabled sections.
	ErrStateLength = errors.New("peq: state vector length mismatch")
	// ErrNilStage is returned when a nil stage is added to a chain.
	ErrNilStage = errors.New("peq: nil stage")
)

// Chain runs its enabled stages in order.
//
// The combined cascade starts with a fixed identity section whose state
// slot is always zero, followed by the sections of each enabled stage.
// Stages keep their own state; FilterBlock copies it into a pre-sized
// scratch vector and back, so steady-state calls do not allocate.
type Chain struct {
	stages []*Stage

	// Scratch rebuilt when the set of enabled sections changes.
	dirty    bool
	combined biquad.Cascade
	states   []biquad.State
}

// NewChain returns a chain of the given stages. Nil stages are skipped.
func NewChain(stages ...*Stage) *Chain {
	c := &Chain{dirty: true}
	for _, s := range stages {
		if s != nil {
			c.stages = append(c.stages, s)
		}
	}

	return c
}

// Len returns the number of stages, enabled or not.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Stage returns stage i. It panics if i is out of range.
func (c *Chain) Stage(i int) *Stage {
	return c.stages[i]
}

// Stages returns the stages in order. The slice is a copy; the stages are
// shared with the chain.
func (c *Chain) Stages() []*Stage {
	return append([]*Stage(nil), c.stages...)
}

// Append adds s at the end of the chain.
func (c *Chain) Append(s *Stage) error {
	if s == nil {
		return ErrNilStage
	}

	c.stages = append(c.stages, s)
	c.dirty = true

	return nil
}

// NumSections returns the section count of the combined cascade,
// including the identity section.
func (c *Chain) NumSections() int {
	n := 1
	for _, s := range c.stages {
		if s.params.Enabled {
			n += len(s.cascade)
		}
	}

	return n
}

// CombinedCascade returns the identity section followed by the sections
// of every enabled stage in chain order.
func (c *Chain) CombinedCascade() biquad.Cascade {
	out := make(biquad.Cascade, 0, c.NumSections())
	out = append(out, biquad.Identity())

	for _, s := range c.stages {
		if s.params.Enabled {
			out = append(out, s.cascade...)
		}
	}

	return out
}

// SetEnabled switches stage i in or out of processing. Enabling always
// zeros the stage state; disabling leaves it as it is.
func (c *Chain) SetEnabled(i int, enabled bool) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}

	s := c.stages[i]
	if enabled {
		s.Reset()
	}

	if s.params.Enabled != enabled {
		s.params.Enabled = enabled
		c.dirty = true
	}

	return nil
}

// ReplaceStage puts s at index i. If the old and new stage share type and
// section count, s takes over the old state so processing continues
// without a transient; otherwise s keeps its own state.
func (c *Chain) ReplaceStage(i int, s *Stage) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}

	if s == nil {
		return ErrNilStage
	}

	old := c.stages[i]
	if old != s && old.params.Type == s.params.Type && len(old.state) == len(s.state) {
		copy(s.state, old.state)
	}

	c.stages[i] = s
	c.dirty = true

	return nil
}

// Update rebuilds stage i from the settings returned by edit and replaces
// it with the state policy of ReplaceStage. On error the chain is left
// unchanged.
func (c *Chain) Update(i int, edit func(Params) Params) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}

	old := c.stages[i]

	s, err := old.With(edit(old.params))
	if err != nil {
		return fmt.Errorf("peq: update stage %d: %w", i, err)
	}

	return c.ReplaceStage(i, s)
}

// CombinedState returns the state vector of the combined cascade: a zero
// entry for the identity section, then the state of every enabled stage.
func (c *Chain) CombinedState() []biquad.State {
	out := make([]biquad.State, 1, c.NumSections())

	for _, s := range c.stages {
		if s.params.Enabled {
			out = append(out, s.state...)
		}
	}

	return out
}

// ApplyState writes a vector in the layout of CombinedState back into the
// enabled stages. The identity slot is ignored.
func (c *Chain) ApplyState(states []biquad.State) error {
	if want := c.NumSections(); len(states) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrStateLength, len(states), want)
	}

	c.scatter(states)

	return nil
}

// ResetAll zeros the state of every stage, enabled or not.
func (c *Chain) ResetAll() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// FilterBlock filters buf in place through the combined cascade and
// returns it. Stage states advance so that consecutive blocks form one
// continuous signal.
func (c *Chain) FilterBlock(buf []float64) []float64 {
	if c.dirty {
		c.rebuild()
	}

	if len(buf) == 0 {
		return buf
	}

	c.gather()
	c.combined.ProcessBlock(c.states, buf)
	c.scatter(c.states)

	return buf
}

func (c *Chain) rebuild() {
	n := c.NumSections()

	if cap(c.combined) < n {
		c.combined = make(biquad.Cascade, 0, n)
		c.states = make([]biquad.State, n)
	}

	c.combined = c.combined[:0]
	c.combined = append(c.combined, biquad.Identity())

	for _, s := range c.stages {
		if s.params.Enabled {
			c.combined = append(c.combined, s.cascade...)
		}
	}

	c.states = c.states[:n]
	c.dirty = false
}

func (c *Chain) gather() {
	c.states[0] = biquad.State{}
	n := 1

	for _, s := range c.stages {
		if s.params.Enabled {
			n += copy(c.states[n:], s.state)
		}
	}
}

func (c *Chain) scatter(states []biquad.State) {
	n := 1

	for _, s := range c.stages {
		if s.params.Enabled {
			n += copy(s.state, states[n:n+len(s.state)])
		}
	}
}

func (c *Chain) checkIndex(i int) error {
	if i < 0 || i >= len(c.stages) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndex, i, len(c.stages))
	}

	return nil
}
