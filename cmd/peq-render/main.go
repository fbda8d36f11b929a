// Command peq-render filters a WAV file through an equalizer chain.
//
// Usage:
//
//	peq-render [flags] input.wav output.wav [type:freq[:gain[:q]] ...]
//
// Every channel runs through its own copy of the chain. The output keeps
// the sample rate, bit depth and channel count of the input.
//
// Examples:
//
//	peq-render in.wav out.wav peak:1000:6:2
//	peq-render -preset vocal.json -block 512 in.wav out.wav
//	peq-render -v -preset master.json in.wav out.wav lowpass-brickwall:16000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-peq/dsp/pcm"
	"github.com/cwbudde/algo-peq/dsp/peq"
	"github.com/cwbudde/algo-peq/internal/wavio"
	"github.com/cwbudde/algo-peq/preset"
)

const (
	defaultBlockSize = 1024
	minRequiredArgs  = 2
	progressFrames   = 1 << 17
)

func main() {
	presetPath := flag.String("preset", "", "JSON preset (default: the five-stage default layout)")
	block := flag.Int("block", defaultBlockSize, "frames per processing block")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peq-render [flags] input.wav output.wav [type:freq[:gain[:q]] ...]\n\n")
		fmt.Fprintf(os.Stderr, "Filters a WAV file through a parametric equalizer.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < minRequiredArgs {
		flag.Usage()
		os.Exit(1)
	}

	args := flag.Args()
	if err := run(args[0], args[1], *presetPath, args[2:], *block, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, presetPath string, stageArgs []string, block int, verbose bool) error {
	if block < 1 {
		return fmt.Errorf("block size must be >= 1: %d", block)
	}

	in, err := wavio.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	fs := float64(in.SampleRate())
	channels := in.Channels()

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", in.SampleRate(), channels, in.BitDepth())
	}

	chains, err := buildChains(presetPath, stageArgs, fs, channels)
	if err != nil {
		return err
	}

	if verbose {
		for i, s := range chains[0].Stages() {
			log.Printf("Stage %d: %v", i, s)
		}
	}

	out, err := wavio.Create(outPath, in.SampleRate(), in.BitDepth(), channels)
	if err != nil {
		return err
	}

	frames, err := render(in, out, chains, block, verbose)
	if err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	if verbose {
		log.Printf("Wrote %s (%d frames)", outPath, frames)
	}

	return nil
}

// buildChains returns one independent chain per channel, all reset.
func buildChains(presetPath string, stageArgs []string, fs float64, channels int) ([]*peq.Chain, error) {
	var f *preset.File

	if presetPath != "" {
		var err error
		if f, err = preset.LoadJSON(presetPath); err != nil {
			return nil, err
		}
	} else if len(stageArgs) > 0 {
		f = &preset.File{Base: preset.BaseEmpty}
	}

	chains := make([]*peq.Chain, channels)
	for ch := range chains {
		c, err := f.Build(fs)
		if err != nil {
			return nil, err
		}

		if err := preset.AppendArgs(c, stageArgs, fs, f.Options()...); err != nil {
			return nil, err
		}

		c.ResetAll()
		chains[ch] = c
	}

	return chains, nil
}

func render(in *wavio.Reader, out *wavio.Writer, chains []*peq.Chain, block int, verbose bool) (int, error) {
	var (
		planes   [][]float64
		total    int
		progress = newProgressTracker(verbose)
		outBuf   = out.NewBuffer(block)
	)

	for {
		buf, err := in.ReadBlock(block)
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}

		var frames int
		planes, frames, err = pcm.Deinterleave(planes, buf)
		if err != nil {
			return total, err
		}

		for ch, c := range chains {
			c.FilterBlock(planes[ch][:frames])
		}

		if err := pcm.Interleave(outBuf, planes, frames); err != nil {
			return total, err
		}

		if err := out.Write(outBuf); err != nil {
			return total, err
		}

		total += frames
		progress.report(total)
	}
}

// progressTracker logs a line every progressFrames frames.
type progressTracker struct {
	verbose bool
	next    int
}

func newProgressTracker(verbose bool) *progressTracker {
	return &progressTracker{verbose: verbose, next: progressFrames}
}

func (p *progressTracker) report(frames int) {
	if !p.verbose || frames < p.next {
		return
	}

	log.Printf("Progress: %d frames", frames)

	for p.next <= frames {
		p.next += progressFrames
	}
}
