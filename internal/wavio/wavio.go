// Package wavio streams integer PCM WAV files block by block.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM audio format tag.
const wavFormatPCM = 1

// Reader decodes an integer PCM WAV file.
type Reader struct {
	file    *os.File
	decoder *wav.Decoder
	format  *audio.Format
	depth   int
	buf     *audio.IntBuffer
}

// Open opens and validates a WAV file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("wavio: invalid WAV file: %s", path)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		_ = f.Close()
		return nil, fmt.Errorf("wavio: no channels in %s", path)
	}

	return &Reader{
		file:    f,
		decoder: dec,
		format:  format,
		depth:   int(dec.BitDepth),
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (r *Reader) SampleRate() int { return r.format.SampleRate }

// Channels returns the channel count.
func (r *Reader) Channels() int { return r.format.NumChannels }

// BitDepth returns the bits per sample.
func (r *Reader) BitDepth() int { return r.depth }

// ReadBlock reads up to frames interleaved frames. The returned buffer is
// reused by the next call. At the end of the data it returns io.EOF.
func (r *Reader) ReadBlock(frames int) (*audio.IntBuffer, error) {
	if frames < 1 {
		return nil, fmt.Errorf("wavio: block size must be >= 1: %d", frames)
	}

	n := frames * r.format.NumChannels
	if r.buf == nil || cap(r.buf.Data) < n {
		r.buf = &audio.IntBuffer{
			Format: r.format,
			Data:   make([]int, n),
		}
	}

	r.buf.Data = r.buf.Data[:n]
	r.buf.SourceBitDepth = r.depth

	read, err := r.decoder.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("wavio: read: %w", err)
	}

	// Drop a trailing partial frame.
	read -= read % r.format.NumChannels
	if read == 0 {
		return nil, io.EOF
	}

	r.buf.Data = r.buf.Data[:read]

	return r.buf, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Writer encodes an integer PCM WAV file.
type Writer struct {
	file    *os.File
	encoder *wav.Encoder
	format  *audio.Format
	depth   int
}

// Create creates path and prepares a WAV encoder for it.
func Create(path string, sampleRate, bitDepth, channels int) (*Writer, error) {
	if sampleRate < 1 || channels < 1 {
		return nil, fmt.Errorf("wavio: invalid format: %d Hz, %d channels", sampleRate, channels)
	}

	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("wavio: unsupported bit depth: %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: create: %w", err)
	}

	return &Writer{
		file:    f,
		encoder: wav.NewEncoder(f, sampleRate, bitDepth, channels, wavFormatPCM),
		format:  &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		depth:   bitDepth,
	}, nil
}

// NewBuffer returns an empty buffer in the writer format with room for
// frames frames.
func (w *Writer) NewBuffer(frames int) *audio.IntBuffer {
	return &audio.IntBuffer{
		Format:         w.format,
		Data:           make([]int, 0, frames*w.format.NumChannels),
		SourceBitDepth: w.depth,
	}
}

// Write appends the samples of buf.
func (w *Writer) Write(buf *audio.IntBuffer) error {
	if err := w.encoder.Write(buf); err != nil {
		return fmt.Errorf("wavio: write: %w", err)
	}

	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *Writer) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return w.file.Close()
}
