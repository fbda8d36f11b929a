package peq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-peq/dsp/filter/freqz"
)

const sampleRate = 48000.0

func mustStage(t testing.TB, typ Type, cutoff, gainDB, q float64, enabled bool, opts ...StageOption) *Stage {
	t.Helper()

	s, err := NewStage(typ, cutoff, gainDB, q, enabled, opts...)
	if err != nil {
		t.Fatalf("NewStage(%v, %g, %g, %g): %v", typ, cutoff, gainDB, q, err)
	}

	return s
}

// stageDB returns the stage magnitude in dB at angular frequency w.
func stageDB(s *Stage, w float64) float64 {
	_, h := freqz.Response(s.cascade, []float64{w})
	return freqz.MagnitudeDB(h)[0]
}

func allStageTypes(t testing.TB) []*Stage {
	t.Helper()

	return []*Stage{
		mustStage(t, LowpassFlat, 0.3, 0, 2, true),
		mustStage(t, LowpassBrickwall, 0.4, 0, 1, true),
		mustStage(t, HighpassFlat, 0.05, 0, 3, true),
		mustStage(t, HighpassBrickwall, 0.01, 0, 1, true),
		mustStage(t, LowShelf, 0.02, -4, 0.7, true),
		mustStage(t, HighShelf, 0.5, 3, 0.5, true),
		mustStage(t, Peak, 0.1, 6, 2, true),
	}
}

func hasNonZeroState(s *Stage) bool {
	for _, st := range s.state {
		if st[0] != 0 || st[1] != 0 {
			return true
		}
	}

	return false
}

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
