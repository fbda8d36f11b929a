package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-peq/internal/cpu"
)

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// processBlock runs one section over buf in place with the kernel selected
// for this CPU.
func processBlock(c Coefficients, st *State, buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	n := c.Normalized()
	coeffs := archregistry.Coefficients{
		B0: n.B0,
		B1: n.B1,
		B2: n.B2,
		A1: n.A1,
		A2: n.A2,
	}

	st[0], st[1] = processBlockImpl(coeffs, st[0], st[1], buf)
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

// KernelName returns the name of the block kernel chosen for this CPU.
func KernelName() string {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		return ""
	}

	return entry.Name
}
