package pcm

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/tphakala/simd/f64"
)

// Scales returns the integer-to-float divisor and the float-to-integer
// multiplier for a signed bit depth of 16, 24 or 32.
func Scales(bitDepth int) (toFloat, fromFloat float64, err error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return 0, 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}

	full := math.Ldexp(1, bitDepth-1)

	return full, full - 1, nil
}

// Deinterleave splits the interleaved samples of buf into per-channel
// float slices, reusing the capacity of dst when possible. It returns the
// channel slices and the number of frames.
func Deinterleave(dst [][]float64, buf *audio.IntBuffer) ([][]float64, int, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("pcm: buffer has no channel format")
	}

	div, _, err := Scales(buf.SourceBitDepth)
	if err != nil {
		return nil, 0, err
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels

	if len(dst) != channels {
		dst = make([][]float64, channels)
	}

	for ch := range dst {
		if cap(dst[ch]) < frames {
			dst[ch] = make([]float64, frames)
		}
		dst[ch] = dst[ch][:frames]

		for i := range frames {
			dst[ch][i] = float64(buf.Data[i*channels+ch])
		}

		f64.Scale(dst[ch], dst[ch], 1/div)
	}

	return dst, frames, nil
}

// Interleave writes frames of per-channel float samples into buf.Data as
// integers of buf.SourceBitDepth, growing buf.Data as needed. All
// channels must hold at least frames samples.
func Interleave(buf *audio.IntBuffer, channels [][]float64, frames int) error {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels != len(channels) {
		return fmt.Errorf("pcm: buffer format does not match %d channels", len(channels))
	}

	_, mul, err := Scales(buf.SourceBitDepth)
	if err != nil {
		return err
	}

	for ch, c := range channels {
		if len(c) < frames {
			return fmt.Errorf("pcm: channel %d has %d samples, want %d", ch, len(c), frames)
		}
	}

	n := frames * len(channels)
	if cap(buf.Data) < n {
		buf.Data = make([]int, n)
	}
	buf.Data = buf.Data[:n]

	for i := range frames {
		for ch, c := range channels {
			buf.Data[i*len(channels)+ch] = int(clampTrunc(c[i]*mul, -mul-1, mul))
		}
	}

	return nil
}
