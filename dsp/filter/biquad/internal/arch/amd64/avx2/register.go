//go:build amd64 && !purego

// Package avx2 registers the biquad block kernel used on AVX2-capable CPUs.
package avx2

import (
	"github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-peq/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: ProcessBlock,
	})
}

// ProcessBlock advances two samples per step. The second output and the
// delay values after the pair are expanded in terms of the pair inputs, so
// only y0 sits on the critical path of y1:
//
//	y0  = b0·x0 + d0
//	y1  = b0·x1 + b1·x0 - a1·y0 + d1
//	d0' = b1·x1 + b2·x0 - a1·y1 - a2·y0
//	d1' = b2·x1 - a2·y1
//
// TODO: replace with an assembly kernel that runs two channels per register.
func ProcessBlock(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	n := len(buf) &^ 1
	for i := 0; i < n; i += 2 {
		x0, x1 := buf[i], buf[i+1]

		y0 := b0*x0 + d0
		y1 := b0*x1 + b1*x0 - a1*y0 + d1

		d0 = b1*x1 + b2*x0 - a1*y1 - a2*y0
		d1 = b2*x1 - a2*y1

		buf[i], buf[i+1] = y0, y1
	}

	if n < len(buf) {
		x := buf[n]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[n] = y
	}

	return d0, d1
}
