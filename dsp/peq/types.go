package peq

import (
	"fmt"
	"strings"
)

// Type selects the filter design of a stage. The numeric values are
// stable; text forms are used in presets and on the command line.
type Type int

const (
	// LowpassFlat is a Butterworth low-pass of order 2^Q.
	LowpassFlat Type = iota
	// LowpassBrickwall is a steep elliptic low-pass.
	LowpassBrickwall
	// HighpassFlat is a Butterworth high-pass of order 2^Q.
	HighpassFlat
	// HighpassBrickwall is a steep elliptic high-pass.
	HighpassBrickwall
	// LowShelf boosts or cuts below the cutoff.
	LowShelf
	// HighShelf boosts or cuts above the cutoff.
	HighShelf
	// Peak boosts or cuts a band around the cutoff.
	Peak
)

var typeNames = [...]string{
	LowpassFlat:       "lowpass-flat",
	LowpassBrickwall:  "lowpass-brickwall",
	HighpassFlat:      "highpass-flat",
	HighpassBrickwall: "highpass-brickwall",
	LowShelf:          "low-shelf",
	HighShelf:         "high-shelf",
	Peak:              "peak",
}

// Types returns every stage type in numeric order.
func Types() []Type {
	return []Type{LowpassFlat, LowpassBrickwall, HighpassFlat, HighpassBrickwall, LowShelf, HighShelf, Peak}
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return t >= LowpassFlat && t <= Peak
}

// String returns the type name used in presets and CLI flags.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

// HasGain reports whether the gain parameter affects the design.
func (t Type) HasGain() bool {
	return t == LowShelf || t == HighShelf || t == Peak
}

// IsFlat reports whether t is a Butterworth pass filter.
func (t Type) IsFlat() bool {
	return t == LowpassFlat || t == HighpassFlat
}

// IsBrickwall reports whether t is an elliptic pass filter.
func (t Type) IsBrickwall() bool {
	return t == LowpassBrickwall || t == HighpassBrickwall
}

// ParseType parses a type name as returned by String. Matching ignores
// case, and underscores are accepted in place of hyphens.
func ParseType(s string) (Type, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, t := range Types() {
		if typeNames[t] == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("peq: unknown stage type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("peq: unknown stage type %d", int(t))
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}
