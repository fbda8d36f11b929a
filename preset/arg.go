package preset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-peq/dsp/peq"
)

// ParseStageArg parses a command-line stage description of the form
//
//	type:freqHz[:gainDB[:q]]
//
// for example "peak:1000:6:2" or "highpass-flat:40::3".
func ParseStageArg(arg string) (StageSetting, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return StageSetting{}, fmt.Errorf("preset: stage %q: want type:freq[:gain[:q]]", arg)
	}

	typ, err := peq.ParseType(parts[0])
	if err != nil {
		return StageSetting{}, fmt.Errorf("preset: stage %q: %w", arg, err)
	}

	s := StageSetting{Type: &typ}

	fields := []struct {
		name string
		dst  **float64
	}{
		{"freq", &s.FreqHz},
		{"gain", &s.GainDB},
		{"q", &s.Q},
	}

	for i, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return StageSetting{}, fmt.Errorf("preset: stage %q: bad %s: %w", arg, fields[i].name, err)
		}

		*fields[i].dst = &v
	}

	if s.FreqHz == nil {
		return StageSetting{}, fmt.Errorf("preset: stage %q: missing freq", arg)
	}

	return s, nil
}

// AppendArgs parses each argument with ParseStageArg and appends the
// stages to c, designed for sampleRate.
func AppendArgs(c *peq.Chain, args []string, sampleRate float64, opts ...peq.StageOption) error {
	for _, arg := range args {
		s, err := ParseStageArg(arg)
		if err != nil {
			return err
		}

		if err := s.validate(c.Len(), sampleRate); err != nil {
			return err
		}

		st, err := s.NewStage(sampleRate, opts...)
		if err != nil {
			return fmt.Errorf("preset: stage %q: %w", arg, err)
		}

		if err := c.Append(st); err != nil {
			return err
		}
	}

	return nil
}
