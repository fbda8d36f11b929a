package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

// Sample widths in bytes accepted by Decode and Encode.
const (
	WidthInt16   = 2
	WidthFloat32 = 4
	WidthFloat64 = 8
)

const (
	int16Scale = 32768.0
	int16Max   = math.MaxInt16
)

var (
	// ErrSampleWidth is returned for unsupported sample widths.
	ErrSampleWidth = errors.New("pcm: unsupported sample width")
	// ErrBitDepth is returned for unsupported integer bit depths.
	ErrBitDepth = errors.New("pcm: unsupported bit depth")
	// ErrPartialSample is returned when a byte slice does not hold a
	// whole number of samples.
	ErrPartialSample = errors.New("pcm: data length is not a multiple of the sample width")
)

// Decode converts little-endian sample bytes to float samples. Width 2
// is signed 16-bit integer PCM, scaled to [-1, 1); widths 4 and 8 are
// IEEE floats passed through unchanged.
func Decode(data []byte, sampleWidth int) ([]float64, error) {
	if err := checkWidth(len(data), sampleWidth); err != nil {
		return nil, err
	}

	n := len(data) / sampleWidth
	out := make([]float64, n)

	switch sampleWidth {
	case WidthInt16:
		ints := make([]int16, n)
		for i := range ints {
			ints[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
		}

		ToFloat(out, ints)
	case WidthFloat32:
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:])))
		}
	case WidthFloat64:
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
		}
	}

	return out, nil
}

// Encode is the inverse of Decode.
func Encode(samples []float64, sampleWidth int) ([]byte, error) {
	if err := checkWidth(0, sampleWidth); err != nil {
		return nil, err
	}

	out := make([]byte, len(samples)*sampleWidth)

	switch sampleWidth {
	case WidthInt16:
		ints := FromFloat(make([]int16, len(samples)), samples)
		for i, v := range ints {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
		}
	case WidthFloat32:
		for i, v := range samples {
			binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(float32(v)))
		}
	case WidthFloat64:
		for i, v := range samples {
			binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
		}
	}

	return out, nil
}

func checkWidth(n, sampleWidth int) error {
	switch sampleWidth {
	case WidthInt16, WidthFloat32, WidthFloat64:
	default:
		return fmt.Errorf("%w: %d", ErrSampleWidth, sampleWidth)
	}

	if n%sampleWidth != 0 {
		return fmt.Errorf("%w: %d bytes, width %d", ErrPartialSample, n, sampleWidth)
	}

	return nil
}

// ToFloat converts 16-bit samples to floats in [-1, 1). dst must hold
// len(src) values; the filled prefix is returned.
func ToFloat(dst []float64, src []int16) []float64 {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = float64(v)
	}

	f64.Scale(dst, dst, 1/int16Scale)

	return dst
}

// FromFloat converts floats to 16-bit samples, multiplying by 32767 and
// truncating toward zero. Values outside [-1, 1] clamp to the integer
// range. dst must hold len(src) values; the filled prefix is returned.
func FromFloat(dst []int16, src []float64) []int16 {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = int16(clampTrunc(v*int16Max, math.MinInt16, int16Max))
	}

	return dst
}

func clampTrunc(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return math.Trunc(v)
	}
}
