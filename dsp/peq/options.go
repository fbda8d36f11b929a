package peq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-peq/dsp/filter/zpk"
)

const (
	defaultEllipticOrder = 12
	defaultRippleDB      = 0.01
	defaultAttenuationDB = 80.0
	maxEllipticOrder     = 32
)

// StageOption mutates stage design parameters.
type StageOption func(*stageConfig) error

type stageConfig struct {
	ellipticOrder int
	rippleDB      float64
	attenuationDB float64
	tolerance     float64
}

func defaultStageConfig() stageConfig {
	return stageConfig{
		ellipticOrder: defaultEllipticOrder,
		rippleDB:      defaultRippleDB,
		attenuationDB: defaultAttenuationDB,
		tolerance:     zpk.DefaultTolerance,
	}
}

// WithEllipticOrder sets the order of brickwall designs.
// Range: [1, 32]. Default: 12.
func WithEllipticOrder(order int) StageOption {
	return func(cfg *stageConfig) error {
		if order < 1 || order > maxEllipticOrder {
			return fmt.Errorf("%w: elliptic order must be in [1, %d]: %d",
				ErrInvalidParams, maxEllipticOrder, order)
		}
		cfg.ellipticOrder = order
		return nil
	}
}

// WithRipple sets the passband ripple of brickwall designs in dB.
// Default: 0.01.
func WithRipple(rippleDB float64) StageOption {
	return func(cfg *stageConfig) error {
		if !(rippleDB > 0) || math.IsInf(rippleDB, 0) {
			return fmt.Errorf("%w: ripple must be > 0 dB and finite: %f", ErrInvalidParams, rippleDB)
		}
		cfg.rippleDB = rippleDB
		return nil
	}
}

// WithAttenuation sets the stopband attenuation of brickwall designs in
// dB. It must exceed the ripple. Default: 80.
func WithAttenuation(attenuationDB float64) StageOption {
	return func(cfg *stageConfig) error {
		if !(attenuationDB > 0) || math.IsInf(attenuationDB, 0) {
			return fmt.Errorf("%w: attenuation must be > 0 dB and finite: %f", ErrInvalidParams, attenuationDB)
		}
		cfg.attenuationDB = attenuationDB
		return nil
	}
}

// WithTolerance sets the tolerance used to pair conjugate roots and to
// classify roots as real. Default: zpk.DefaultTolerance.
func WithTolerance(tol float64) StageOption {
	return func(cfg *stageConfig) error {
		if !(tol >= 0) || math.IsInf(tol, 0) {
			return fmt.Errorf("%w: tolerance must be >= 0 and finite: %g", ErrInvalidParams, tol)
		}
		cfg.tolerance = tol
		return nil
	}
}
