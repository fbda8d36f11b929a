package freqz

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Epsilon is added to magnitudes before taking the logarithm.
const Epsilon = 1e-7

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

// Magnitude returns |h[k]| for each response value.
func Magnitude(h []complex128) []float64 {
	if len(h) == 0 {
		return nil
	}

	out := make([]float64, len(h))
	re, im, buf := getScratch(len(h))

	for i, c := range h {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// MagnitudeDB returns 20·log10(|h[k]| + Epsilon).
func MagnitudeDB(h []complex128) []float64 {
	out := Magnitude(h)
	for i, m := range out {
		out[i] = 20 * math.Log10(m+Epsilon)
	}

	return out
}
