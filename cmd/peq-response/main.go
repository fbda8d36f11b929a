// Command peq-response prints the frequency response of an equalizer
// chain.
//
// Usage:
//
//	peq-response [flags] [type:freq[:gain[:q]] ...]
//
// The chain comes from -preset (or the default layout) and is extended by
// the stage arguments. Without -preset, stage arguments start from an
// empty chain.
//
// Examples:
//
//	peq-response peak:1000:6:2 high-shelf:8000:-3
//	peq-response -preset vocal.json -points 64
//	peq-response -preset vocal.json -stages
//	peq-response -input take.wav -block 4096 peak:3000:6
//	peq-response -list
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/cmplx"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-peq/dsp/filter/freqz"
	"github.com/cwbudde/algo-peq/dsp/pcm"
	"github.com/cwbudde/algo-peq/dsp/peq"
	"github.com/cwbudde/algo-peq/internal/wavio"
	"github.com/cwbudde/algo-peq/preset"
)

func main() {
	rate := flag.Float64("rate", 0, "sample rate in Hz (default: preset sample_rate or 48000)")
	points := flag.Int("points", 512, "number of log-spaced frequencies")
	minHz := flag.Float64("min-hz", 50, "lowest frequency in Hz")
	presetPath := flag.String("preset", "", "JSON preset to start from")
	savePath := flag.String("save", "", "write the resulting chain as a JSON preset")
	stages := flag.Bool("stages", false, "print the stage table instead of the response")
	list := flag.Bool("list", false, "list stage types")
	input := flag.String("input", "", "WAV file whose first filtered block is analyzed instead")
	block := flag.Int("block", 4096, "block size in frames for -input")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peq-response [flags] [type:freq[:gain[:q]] ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the magnitude and phase response of an equalizer chain.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  peq-response peak:1000:6:2 high-shelf:8000:-3\n")
		fmt.Fprintf(os.Stderr, "  peq-response -preset vocal.json -points 64\n")
		fmt.Fprintf(os.Stderr, "  peq-response -input take.wav peak:3000:6\n")
	}
	flag.Parse()

	if *list {
		printList(os.Stdout)
		return
	}

	chain, fs, err := loadChain(*presetPath, *rate, *input, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		log.Printf("Chain: %d stages, %d sections at %.0f Hz", chain.Len(), chain.NumSections(), fs)
	}

	if *savePath != "" {
		if err := preset.SaveJSON(*savePath, preset.FromChain(chain, fs)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if *verbose {
			log.Printf("Wrote preset %s", *savePath)
		}
	}

	switch {
	case *stages:
		err = printStages(os.Stdout, chain, fs)
	case *input != "":
		err = printBlockSpectrum(os.Stdout, chain, *input, *block)
	default:
		err = printResponse(os.Stdout, chain, fs, *points, *minHz)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadChain builds the chain and returns it with its sample rate. With
// -input the WAV rate wins over the preset.
func loadChain(presetPath string, rate float64, input string, args []string) (*peq.Chain, float64, error) {
	var f *preset.File

	if presetPath != "" {
		var err error
		if f, err = preset.LoadJSON(presetPath); err != nil {
			return nil, 0, err
		}
	} else if len(args) > 0 {
		f = &preset.File{Base: preset.BaseEmpty}
	}

	if input != "" && rate <= 0 {
		r, err := wavio.Open(input)
		if err != nil {
			return nil, 0, err
		}

		rate = float64(r.SampleRate())
		_ = r.Close()
	}

	fs := f.Rate(rate)

	chain, err := f.Build(fs)
	if err != nil {
		return nil, 0, err
	}

	if err := preset.AppendArgs(chain, args, fs, f.Options()...); err != nil {
		return nil, 0, err
	}

	return chain, fs, nil
}

func printList(w io.Writer) {
	for _, t := range peq.Types() {
		gain := ""
		if t.HasGain() {
			gain = " (gain)"
		}
		fmt.Fprintf(w, "%s%s\n", t, gain)
	}
}

func printStages(w io.Writer, chain *peq.Chain, fs float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tType\tFreq [Hz]\tGain [dB]\tQ\tOrder\tSlope [dB/oct]\tEnabled\n")
	fmt.Fprintf(tw, "-\t----\t---------\t---------\t-\t-----\t--------------\t-------\n")

	for i, s := range chain.Stages() {
		slope := "-"
		if v := s.SlopeDBPerOct(); v > 0 {
			slope = fmt.Sprintf("%.0f", v)
		}

		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.2f\t%g\t%d\t%s\t%t\n",
			i,
			s.Type(),
			peq.CutoffToHz(s.Cutoff(), fs),
			s.GainDB(),
			s.Q(),
			s.Order(),
			slope,
			s.Enabled(),
		)
	}

	return tw.Flush()
}

func printResponse(w io.Writer, chain *peq.Chain, fs float64, points int, minHz float64) error {
	if !(minHz > 0 && minHz < fs/2) {
		return fmt.Errorf("min-hz must be in (0, %g): %g", fs/2, minHz)
	}

	grid := freqz.HzGrid(points, minHz, fs)
	if grid == nil {
		return fmt.Errorf("invalid grid: %d points", points)
	}

	ws, h := freqz.Response(chain.CombinedCascade(), grid)
	hz := freqz.ToHz(ws, fs)
	db := freqz.MagnitudeDB(h)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tMagnitude [dB]\tPhase [deg]\n")
	fmt.Fprintf(tw, "---------\t--------------\t-----------\n")

	for i := range hz {
		fmt.Fprintf(tw, "%.2f\t%.3f\t%.2f\n", hz[i], db[i], cmplx.Phase(h[i])*180/math.Pi)
	}

	return tw.Flush()
}

func printBlockSpectrum(w io.Writer, chain *peq.Chain, input string, block int) error {
	r, err := wavio.Open(input)
	if err != nil {
		return err
	}
	defer r.Close()

	buf, err := r.ReadBlock(block)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	channels, frames, err := pcm.Deinterleave(nil, buf)
	if err != nil {
		return err
	}

	// Zero-pad a short final block to the analysis size.
	x := make([]float64, block)
	copy(x, channels[0][:frames])
	chain.FilterBlock(x)

	freqs, db, err := freqz.Spectrum(x, float64(r.SampleRate()))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tLevel [dB]\n")
	fmt.Fprintf(tw, "---------\t----------\n")

	for i := range freqs {
		fmt.Fprintf(tw, "%.2f\t%.2f\n", freqs[i], db[i])
	}

	return tw.Flush()
}
