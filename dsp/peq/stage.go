package peq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
	"github.com/cwbudde/algo-peq/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-peq/dsp/filter/zpk"
)

// ErrInvalidParams is wrapped by every stage parameter error.
var ErrInvalidParams = errors.New("peq: invalid stage parameters")

const (
	minFlatQ = 1
	maxFlatQ = 3
)

// Params are the user-facing settings of a stage.
//
// Cutoff is normalized to Nyquist. GainDB applies to shelves and peaks.
// Q is the resonance for shelves and peaks; for flat pass filters it is
// the integer slope selector giving order 2^Q. Brickwall filters ignore
// GainDB and Q.
type Params struct {
	Type    Type
	Cutoff  float64
	GainDB  float64
	Q       float64
	Enabled bool
}

// Validate checks p against the rules of its type.
func (p Params) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %d", ErrInvalidParams, int(p.Type))
	}

	if !(p.Cutoff > 0 && p.Cutoff < 1) {
		return fmt.Errorf("%w: cutoff must be in (0, 1): %g", ErrInvalidParams, p.Cutoff)
	}

	if math.IsNaN(p.GainDB) || math.IsInf(p.GainDB, 0) {
		return fmt.Errorf("%w: gain must be finite: %f", ErrInvalidParams, p.GainDB)
	}

	if !(p.Q > 0) || math.IsInf(p.Q, 0) {
		return fmt.Errorf("%w: Q must be > 0 and finite: %f", ErrInvalidParams, p.Q)
	}

	if p.Type.IsFlat() && (p.Q != math.Trunc(p.Q) || p.Q < minFlatQ || p.Q > maxFlatQ) {
		return fmt.Errorf("%w: %v slope must be an integer in [%d, %d]: %g",
			ErrInvalidParams, p.Type, minFlatQ, maxFlatQ, p.Q)
	}

	return nil
}

// WithType returns p switched to type t. Q restarts at 1, which is valid
// for every type.
func (p Params) WithType(t Type) Params {
	p.Type = t
	p.Q = 1

	return p
}

// MoveTo returns p with a new cutoff and gain. The gain is forced to 0
// for types without a gain parameter.
func (p Params) MoveTo(cutoff, gainDB float64) Params {
	p.Cutoff = cutoff
	if !p.Type.HasGain() {
		gainDB = 0
	}
	p.GainDB = gainDB

	return p
}

// Stage is one designed filter of a chain together with its section state.
type Stage struct {
	params  Params
	cfg     stageConfig
	cascade biquad.Cascade
	state   []biquad.State
}

// NewStage designs a stage. The state starts zeroed.
func NewStage(typ Type, cutoff, gainDB, q float64, enabled bool, opts ...StageOption) (*Stage, error) {
	return NewStageParams(Params{
		Type:    typ,
		Cutoff:  cutoff,
		GainDB:  gainDB,
		Q:       q,
		Enabled: enabled,
	}, opts...)
}

// NewStageParams is NewStage taking the settings as Params.
func NewStageParams(p Params, opts ...StageOption) (*Stage, error) {
	cfg := defaultStageConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return newStage(p, cfg)
}

func newStage(p Params, cfg stageConfig) (*Stage, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if cfg.attenuationDB <= cfg.rippleDB {
		return nil, fmt.Errorf("%w: attenuation %g dB must exceed ripple %g dB",
			ErrInvalidParams, cfg.attenuationDB, cfg.rippleDB)
	}

	c, err := designCascade(p, cfg)
	if err != nil {
		return nil, err
	}

	return &Stage{
		params:  p,
		cfg:     cfg,
		cascade: c,
		state:   c.NewStates(),
	}, nil
}

func designCascade(p Params, cfg stageConfig) (biquad.Cascade, error) {
	switch p.Type {
	case LowpassFlat, HighpassFlat:
		z, err := prototype.Butterworth(1<<int(p.Q), p.Cutoff, passBand(p.Type))
		return sections(z, err, cfg)
	case LowpassBrickwall, HighpassBrickwall:
		z, err := prototype.Elliptic(cfg.ellipticOrder, cfg.rippleDB, cfg.attenuationDB, p.Cutoff, passBand(p.Type))
		return sections(z, err, cfg)
	case LowShelf, HighShelf:
		return biquad.Cascade{design.Shelf(p.Cutoff, p.GainDB, p.Q, p.Type == LowShelf)}, nil
	case Peak:
		return biquad.Cascade{design.Peak(p.Cutoff, p.GainDB, p.Q)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %d", ErrInvalidParams, int(p.Type))
	}
}

func sections(z prototype.ZPK, err error, cfg stageConfig) (biquad.Cascade, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	c, _, err := zpk.ToSOSTol(z.Zeros, z.Poles, z.Gain, cfg.tolerance)
	if err != nil {
		return nil, fmt.Errorf("peq: sections: %w", err)
	}

	return c, nil
}

func passBand(t Type) prototype.Band {
	if t == HighpassFlat || t == HighpassBrickwall {
		return prototype.Highpass
	}

	return prototype.Lowpass
}

// With designs a new stage from p using the design options of s. The new
// stage starts with a zeroed state; Chain.ReplaceStage decides whether it
// inherits the old memory.
func (s *Stage) With(p Params) (*Stage, error) {
	return newStage(p, s.cfg)
}

// Params returns the stage settings.
func (s *Stage) Params() Params { return s.params }

// Type returns the stage type.
func (s *Stage) Type() Type { return s.params.Type }

// Cutoff returns the normalized cutoff.
func (s *Stage) Cutoff() float64 { return s.params.Cutoff }

// GainDB returns the gain in dB.
func (s *Stage) GainDB() float64 { return s.params.GainDB }

// Q returns the resonance or slope selector.
func (s *Stage) Q() float64 { return s.params.Q }

// Enabled reports whether the stage takes part in chain processing.
func (s *Stage) Enabled() bool { return s.params.Enabled }

// NumSections returns the number of second-order sections.
func (s *Stage) NumSections() int { return len(s.cascade) }

// Order returns the effective filter order, two per section.
func (s *Stage) Order() int { return s.cascade.Order() }

// Cascade returns a copy of the designed sections.
func (s *Stage) Cascade() biquad.Cascade { return s.cascade.Clone() }

// State returns a copy of the section state.
func (s *Stage) State() []biquad.State {
	return append([]biquad.State(nil), s.state...)
}

// Reset zeros the section state. The design is untouched.
func (s *Stage) Reset() {
	biquad.ResetStates(s.state)
}

// SlopeDBPerOct returns the asymptotic roll-off of flat pass filters,
// 6 dB per order, and 0 for every other type.
func (s *Stage) SlopeDBPerOct() float64 {
	if !s.params.Type.IsFlat() {
		return 0
	}

	return 6 * float64(int(1)<<int(s.params.Q))
}

// FilterBlock filters buf in place through this stage alone, regardless
// of Enabled, advancing the stage state.
func (s *Stage) FilterBlock(buf []float64) []float64 {
	s.cascade.ProcessBlock(s.state, buf)
	return buf
}

// String describes the stage settings.
func (s *Stage) String() string {
	state := "off"
	if s.params.Enabled {
		state = "on"
	}

	return fmt.Sprintf("%v fc=%.4f gain=%.2fdB q=%g order=%d %s",
		s.params.Type, s.params.Cutoff, s.params.GainDB, s.params.Q, s.Order(), state)
}
