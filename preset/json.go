// Package preset loads and saves equalizer chains as JSON.
//
// A preset is applied on top of the default five-stage layout: entry i of
// "stages" overrides the fields it sets on default stage i, and entries
// past the defaults append new stages. Frequencies are stored in Hz and
// normalized against the sample rate the chain is built for.
package preset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-peq/dsp/peq"
)

// DefaultSampleRate is used when neither the caller nor the file names a
// sample rate.
const DefaultSampleRate = 48000.0

// Base layouts a preset can start from.
const (
	BaseDefault = "default"
	BaseEmpty   = "empty"
)

// File is the JSON schema for equalizer presets.
type File struct {
	SampleRate *float64          `json:"sample_rate,omitempty"`
	Base       string            `json:"base,omitempty"`
	Brickwall  *BrickwallSetting `json:"brickwall,omitempty"`
	Stages     []StageSetting    `json:"stages,omitempty"`
}

// BrickwallSetting overrides the elliptic design used by brickwall stages.
type BrickwallSetting struct {
	Order         *int     `json:"order,omitempty"`
	RippleDB      *float64 `json:"ripple_db,omitempty"`
	AttenuationDB *float64 `json:"attenuation_db,omitempty"`
}

// StageSetting is a partial stage entry in a preset file.
type StageSetting struct {
	Type    *peq.Type `json:"type,omitempty"`
	FreqHz  *float64  `json:"freq_hz,omitempty"`
	GainDB  *float64  `json:"gain_db,omitempty"`
	Q       *float64  `json:"q,omitempty"`
	Enabled *bool     `json:"enabled,omitempty"`
}

// LoadJSON reads and parses a preset file.
func LoadJSON(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse decodes preset JSON. Unknown fields are rejected.
func Parse(b []byte) (*File, error) {
	var f File

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	return &f, nil
}

// Rate returns the sample rate a chain should be built for: sampleRate if
// positive, else the file's sample_rate, else DefaultSampleRate.
func (f *File) Rate(sampleRate float64) float64 {
	switch {
	case sampleRate > 0:
		return sampleRate
	case f != nil && f.SampleRate != nil && *f.SampleRate > 0:
		return *f.SampleRate
	default:
		return DefaultSampleRate
	}
}

// Options returns the stage design options of the brickwall section.
func (f *File) Options() []peq.StageOption {
	if f == nil || f.Brickwall == nil {
		return nil
	}

	var opts []peq.StageOption

	b := f.Brickwall
	if b.Order != nil {
		opts = append(opts, peq.WithEllipticOrder(*b.Order))
	}
	if b.RippleDB != nil {
		opts = append(opts, peq.WithRipple(*b.RippleDB))
	}
	if b.AttenuationDB != nil {
		opts = append(opts, peq.WithAttenuation(*b.AttenuationDB))
	}

	return opts
}

// Build returns the chain described by f at the sample rate chosen by
// Rate. A nil file yields the default layout.
func (f *File) Build(sampleRate float64) (*peq.Chain, error) {
	fs := f.Rate(sampleRate)
	if f != nil && f.SampleRate != nil && !(*f.SampleRate > 0) {
		return nil, fmt.Errorf("preset: sample_rate must be > 0")
	}

	opts := f.Options()

	base := BaseDefault
	if f != nil && f.Base != "" {
		base = f.Base
	}

	var (
		c   *peq.Chain
		err error
	)

	switch base {
	case BaseDefault:
		c, err = peq.DefaultChain(fs, opts...)
		if err != nil {
			return nil, fmt.Errorf("preset: %w", err)
		}
	case BaseEmpty:
		c = peq.NewChain()
	default:
		return nil, fmt.Errorf("preset: base must be %q or %q: %q", BaseDefault, BaseEmpty, base)
	}

	if f == nil {
		return c, nil
	}

	for i, s := range f.Stages {
		if err := s.validate(i, fs); err != nil {
			return nil, err
		}

		if i < c.Len() {
			if err := c.Update(i, func(p peq.Params) peq.Params { return s.apply(p, fs) }); err != nil {
				return nil, fmt.Errorf("preset: stages[%d]: %w", i, err)
			}

			continue
		}

		st, err := s.NewStage(fs, opts...)
		if err != nil {
			return nil, fmt.Errorf("preset: stages[%d]: %w", i, err)
		}

		if err := c.Append(st); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewStage builds a standalone stage from s. Type and FreqHz are
// required; gain defaults to 0, Q to 1 and the stage is enabled unless
// s says otherwise.
func (s StageSetting) NewStage(fs float64, opts ...peq.StageOption) (*peq.Stage, error) {
	if s.Type == nil || s.FreqHz == nil {
		return nil, fmt.Errorf("preset: a new stage needs type and freq_hz")
	}

	return peq.NewStageParams(s.apply(peq.Params{Q: 1, Enabled: true}, fs), opts...)
}

func (s StageSetting) validate(i int, fs float64) error {
	if s.Type != nil && !s.Type.Valid() {
		return fmt.Errorf("preset: stages[%d].type is unknown: %d", i, int(*s.Type))
	}

	if s.FreqHz != nil && !(*s.FreqHz > 0 && *s.FreqHz < fs/2) {
		return fmt.Errorf("preset: stages[%d].freq_hz must be in (0, %g)", i, fs/2)
	}

	if s.GainDB != nil && (math.IsNaN(*s.GainDB) || math.IsInf(*s.GainDB, 0)) {
		return fmt.Errorf("preset: stages[%d].gain_db must be finite", i)
	}

	if s.Q != nil && !(*s.Q > 0) {
		return fmt.Errorf("preset: stages[%d].q must be > 0", i)
	}

	return nil
}

// apply overlays s on p. A type change restarts Q at 1 before an explicit
// q is applied.
func (s StageSetting) apply(p peq.Params, fs float64) peq.Params {
	if s.Type != nil && *s.Type != p.Type {
		p = p.WithType(*s.Type)
	}
	if s.FreqHz != nil {
		p.Cutoff = peq.HzToCutoff(*s.FreqHz, fs)
	}
	if s.GainDB != nil {
		p.GainDB = *s.GainDB
	}
	if s.Q != nil {
		p.Q = *s.Q
	}
	if s.Enabled != nil {
		p.Enabled = *s.Enabled
	}

	return p
}

// FromChain describes every stage of c in full, starting from an empty
// base.
func FromChain(c *peq.Chain, sampleRate float64) *File {
	fs := sampleRate
	f := &File{
		SampleRate: &fs,
		Base:       BaseEmpty,
		Stages:     make([]StageSetting, c.Len()),
	}

	for i := range f.Stages {
		p := c.Stage(i).Params()
		hz := peq.CutoffToHz(p.Cutoff, sampleRate)

		f.Stages[i] = StageSetting{
			Type:    &p.Type,
			FreqHz:  &hz,
			GainDB:  &p.GainDB,
			Q:       &p.Q,
			Enabled: &p.Enabled,
		}
	}

	return f
}

// SaveJSON writes f to path as indented JSON.
func SaveJSON(path string, f *File) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}

	return os.WriteFile(path, append(b, '\n'), 0o644)
}
