package peq

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/freqz"
	"github.com/cwbudde/algo-peq/internal/testutil"
)

func testChain(t testing.TB) *Chain {
	t.Helper()

	return NewChain(
		mustStage(t, HighpassFlat, 0.01, 0, 2, true),
		mustStage(t, Peak, 0.1, 6, 2, false),
		mustStage(t, LowShelf, 0.05, -3, 0.7, true),
		mustStage(t, LowpassBrickwall, 0.6, 0, 1, true),
	)
}

func TestNewChain_SkipsNil(t *testing.T) {
	c := NewChain(nil, mustStage(t, Peak, 0.1, 1, 1, true), nil)
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}

	if err := c.Append(nil); !errors.Is(err, ErrNilStage) {
		t.Fatalf("Append(nil) err = %v", err)
	}
}

func TestChain_CombinedCascade(t *testing.T) {
	c := testChain(t)
	combined := c.CombinedCascade()

	if !combined[0].IsIdentity() {
		t.Fatalf("first section %+v is not the identity", combined[0])
	}

	// HP flat Q2 (2) + low shelf (1) + brickwall (6); the peak is disabled.
	if len(combined) != 1+2+1+6 || c.NumSections() != len(combined) {
		t.Fatalf("combined sections = %d, NumSections = %d", len(combined), c.NumSections())
	}

	want := append(biquad.Cascade{biquad.Identity()}, c.Stage(0).Cascade()...)
	want = append(want, c.Stage(2).Cascade()...)
	want = append(want, c.Stage(3).Cascade()...)

	for i := range want {
		if combined[i] != want[i] {
			t.Fatalf("section %d = %+v, want %+v", i, combined[i], want[i])
		}
	}
}

func TestChain_EmptyChainIsIdentity(t *testing.T) {
	c := NewChain()
	if got := c.CombinedCascade(); len(got) != 1 || !got[0].IsIdentity() {
		t.Fatalf("combined = %+v", got)
	}

	x := testutil.DeterministicNoise(5, 1, 64)
	y := c.FilterBlock(append([]float64(nil), x...))
	testutil.RequireSliceNearlyEqual(t, y, x, 0)
}

func TestChain_FilterBlockMatchesCombinedCascade(t *testing.T) {
	c := testChain(t)
	x := testutil.DeterministicNoise(11, 0.8, 777)

	ref := append([]float64(nil), x...)
	cascade := c.CombinedCascade()
	states := c.CombinedState()
	cascade.ProcessBlock(states, ref)

	got := c.FilterBlock(append([]float64(nil), x...))

	testutil.RequireSliceNearlyEqual(t, got, ref, 1e-12)

	after := c.CombinedState()
	for i := range states {
		if after[i] != states[i] {
			t.Fatalf("state %d = %v, want %v", i, after[i], states[i])
		}
	}
}

func TestChain_BlockContinuity(t *testing.T) {
	x := testutil.DeterministicNoise(2, 0.5, 2048)

	whole := testChain(t).FilterBlock(append([]float64(nil), x...))

	c := testChain(t)
	split := append([]float64(nil), x...)

	for _, cut := range [][2]int{{0, 1}, {1, 500}, {500, 501}, {501, 2048}} {
		c.FilterBlock(split[cut[0]:cut[1]])
	}

	testutil.RequireSliceNearlyEqual(t, split, whole, 1e-12)
}

func TestChain_ResetAllSilence(t *testing.T) {
	c := testChain(t)
	c.FilterBlock(testutil.DeterministicNoise(4, 1, 256))

	c.ResetAll()

	for i := 0; i < c.Len(); i++ {
		if hasNonZeroState(c.Stage(i)) {
			t.Fatalf("stage %d not reset", i)
		}
	}

	out := c.FilterBlock(make([]float64, 256))
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %g after ResetAll", i, v)
		}
	}

	for i, st := range c.CombinedState() {
		if st != (biquad.State{}) {
			t.Fatalf("state %d = %v after silent block", i, st)
		}
	}
}

func TestChain_EnableResetsState(t *testing.T) {
	c := testChain(t)
	c.FilterBlock(testutil.DeterministicNoise(8, 1, 128))

	s := c.Stage(0)
	if !hasNonZeroState(s) {
		t.Fatal("stage 0 should carry state")
	}

	if err := c.SetEnabled(0, false); err != nil {
		t.Fatal(err)
	}

	if !hasNonZeroState(s) || s.Enabled() {
		t.Fatal("disabling must keep the state and clear Enabled")
	}

	if err := c.SetEnabled(0, true); err != nil {
		t.Fatal(err)
	}

	if hasNonZeroState(s) || !s.Enabled() {
		t.Fatal("enabling must zero the state")
	}

	// Enabling an already enabled stage also restarts it.
	c.FilterBlock(testutil.DeterministicNoise(9, 1, 32))

	if err := c.SetEnabled(0, true); err != nil {
		t.Fatal(err)
	}

	if hasNonZeroState(s) {
		t.Fatal("re-enabling must zero the state")
	}
}

func TestChain_SetEnabledChangesProcessing(t *testing.T) {
	c := testChain(t)
	before := c.NumSections()

	if err := c.SetEnabled(1, true); err != nil {
		t.Fatal(err)
	}

	if c.NumSections() != before+1 {
		t.Fatalf("NumSections = %d, want %d", c.NumSections(), before+1)
	}

	x := testutil.DeterministicNoise(12, 0.3, 300)
	ref := append([]float64(nil), x...)
	c.CombinedCascade().ProcessBlock(c.CombinedState(), ref)

	got := c.FilterBlock(append([]float64(nil), x...))
	testutil.RequireSliceNearlyEqual(t, got, ref, 1e-12)
}

func TestChain_ReplaceStageStatePolicy(t *testing.T) {
	tests := []struct {
		name    string
		next    func(t testing.TB) *Stage
		inherit bool
	}{
		{"same type and order", func(t testing.TB) *Stage { return mustStage(t, HighpassFlat, 0.02, 0, 2, true) }, true},
		{"different order", func(t testing.TB) *Stage { return mustStage(t, HighpassFlat, 0.01, 0, 3, true) }, false},
		{"different type same order", func(t testing.TB) *Stage { return mustStage(t, LowpassFlat, 0.01, 0, 2, true) }, false},
		{"single section type", func(t testing.TB) *Stage { return mustStage(t, Peak, 0.01, 3, 1, true) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testChain(t)
			c.FilterBlock(testutil.DeterministicNoise(6, 1, 200))

			old := c.Stage(0).State()
			next := tt.next(t)

			if err := c.ReplaceStage(0, next); err != nil {
				t.Fatal(err)
			}

			if c.Stage(0) != next {
				t.Fatal("stage not replaced")
			}

			if tt.inherit {
				got := next.State()
				for i := range old {
					if got[i] != old[i] {
						t.Fatalf("state %d = %v, want %v", i, got[i], old[i])
					}
				}

				return
			}

			if hasNonZeroState(next) {
				t.Fatalf("state %v should be zero", next.State())
			}
		})
	}
}

func TestChain_ReplaceStageRebuildsScratch(t *testing.T) {
	c := testChain(t)
	c.FilterBlock(make([]float64, 8))

	if err := c.ReplaceStage(3, mustStage(t, LowpassFlat, 0.6, 0, 1, true)); err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicNoise(13, 0.5, 128)
	ref := append([]float64(nil), x...)
	c.CombinedCascade().ProcessBlock(c.CombinedState(), ref)

	testutil.RequireSliceNearlyEqual(t, c.FilterBlock(x), ref, 1e-12)
}

func TestChain_IndexErrors(t *testing.T) {
	c := testChain(t)
	s := mustStage(t, Peak, 0.1, 0, 1, true)

	for _, i := range []int{-1, c.Len()} {
		if err := c.SetEnabled(i, true); !errors.Is(err, ErrIndex) {
			t.Fatalf("SetEnabled(%d) err = %v", i, err)
		}

		if err := c.ReplaceStage(i, s); !errors.Is(err, ErrIndex) {
			t.Fatalf("ReplaceStage(%d) err = %v", i, err)
		}

		if err := c.Update(i, func(p Params) Params { return p }); !errors.Is(err, ErrIndex) {
			t.Fatalf("Update(%d) err = %v", i, err)
		}
	}

	if err := c.ReplaceStage(0, nil); !errors.Is(err, ErrNilStage) {
		t.Fatalf("ReplaceStage(nil) err = %v", err)
	}
}

func TestChain_CombinedStateLayout(t *testing.T) {
	c := testChain(t)
	c.FilterBlock(testutil.DeterministicNoise(10, 1, 100))

	states := c.CombinedState()
	if len(states) != c.NumSections() {
		t.Fatalf("len = %d, want %d", len(states), c.NumSections())
	}

	if states[0] != (biquad.State{}) {
		t.Fatalf("identity slot = %v", states[0])
	}

	want := append([]biquad.State{{}}, c.Stage(0).State()...)
	want = append(want, c.Stage(2).State()...)
	want = append(want, c.Stage(3).State()...)

	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("state %d = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestChain_ApplyState(t *testing.T) {
	c := testChain(t)

	states := c.CombinedState()
	for i := range states {
		states[i] = biquad.State{float64(i), -float64(i)}
	}

	if err := c.ApplyState(states); err != nil {
		t.Fatal(err)
	}

	if got := c.Stage(2).State()[0]; got != (biquad.State{3, -3}) {
		t.Fatalf("low shelf state = %v", got)
	}

	if hasNonZeroState(c.Stage(1)) {
		t.Fatal("disabled stage must not receive state")
	}

	got := c.CombinedState()
	for i := 1; i < len(states); i++ {
		if got[i] != states[i] {
			t.Fatalf("state %d = %v, want %v", i, got[i], states[i])
		}
	}

	if err := c.ApplyState(states[:3]); !errors.Is(err, ErrStateLength) {
		t.Fatalf("short vector err = %v", err)
	}
}

func TestChain_Update(t *testing.T) {
	c := testChain(t)
	c.FilterBlock(testutil.DeterministicNoise(14, 1, 100))
	old := c.Stage(2).State()

	err := c.Update(2, func(p Params) Params {
		return p.MoveTo(0.08, -6)
	})
	if err != nil {
		t.Fatal(err)
	}

	s := c.Stage(2)
	if s.Cutoff() != 0.08 || s.GainDB() != -6 || s.Q() != 0.7 {
		t.Fatalf("updated params = %+v", s.Params())
	}

	if s.State()[0] != old[0] {
		t.Fatal("same-type update must keep the state")
	}

	err = c.Update(2, func(p Params) Params { return p.WithType(HighShelf) })
	if err != nil {
		t.Fatal(err)
	}

	if s := c.Stage(2); s.Type() != HighShelf || s.Q() != 1 || hasNonZeroState(s) {
		t.Fatalf("type change: %v state %v", s, s.State())
	}

	before := c.Stage(2)
	err = c.Update(2, func(p Params) Params {
		p.Q = 0
		return p
	})

	if !errors.Is(err, ErrInvalidParams) || c.Stage(2) != before {
		t.Fatalf("invalid update err = %v, chain changed = %v", err, c.Stage(2) != before)
	}
}

func TestChain_ResponseIsProductOfStages(t *testing.T) {
	c := NewChain(
		mustStage(t, Peak, 0.05, 4, 1.5, true),
		mustStage(t, HighShelf, 0.3, -2, 0.8, true),
	)

	ws := freqz.LogGrid(128, 1e-3)
	_, chain := freqz.Response(c.CombinedCascade(), ws)
	_, a := freqz.Response(c.Stage(0).Cascade(), ws)
	_, b := freqz.Response(c.Stage(1).Cascade(), ws)
	_, id := freqz.Response(biquad.Cascade{biquad.Identity()}, ws)

	for i := range ws {
		if want := id[i] * a[i] * b[i]; cmplx.Abs(chain[i]-want) > 1e-12*cmplx.Abs(want) {
			t.Fatalf("w=%g: %v, want %v", ws[i], chain[i], want)
		}
	}
}

func TestChain_FilterBlockDoesNotAllocate(t *testing.T) {
	c := testChain(t)
	buf := testutil.DeterministicNoise(15, 0.1, 512)
	c.FilterBlock(buf)

	allocs := testing.AllocsPerRun(50, func() {
		c.FilterBlock(buf)
	})

	if allocs != 0 {
		t.Fatalf("FilterBlock allocates %.1f times per call", allocs)
	}
}

func TestDefaultChain(t *testing.T) {
	c, err := DefaultChain(sampleRate)
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != len(DefaultLayout) {
		t.Fatalf("Len = %d", c.Len())
	}

	for i, l := range DefaultLayout {
		s := c.Stage(i)
		if s.Type() != l.Type || s.Enabled() || s.GainDB() != 0 || s.Q() != 1 {
			t.Fatalf("stage %d = %v", i, s)
		}

		if hz := CutoffToHz(s.Cutoff(), sampleRate); !nearlyEqual(hz, l.Hz, 1e-9) {
			t.Fatalf("stage %d at %g Hz, want %g", i, hz, l.Hz)
		}
	}

	x := testutil.DeterministicNoise(16, 1, 64)
	testutil.RequireSliceNearlyEqual(t, c.FilterBlock(append([]float64(nil), x...)), x, 0)

	for _, fs := range []float64{0, -1, 20000} {
		if _, err := DefaultChain(fs); !errors.Is(err, ErrInvalidParams) {
			t.Fatalf("DefaultChain(%g) err = %v", fs, err)
		}
	}
}

func BenchmarkChainFilterBlock(b *testing.B) {
	c, err := DefaultChain(sampleRate)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < c.Len(); i++ {
		if err := c.SetEnabled(i, true); err != nil {
			b.Fatal(err)
		}
	}

	buf := testutil.DeterministicNoise(1, 0.1, 1024)

	b.SetBytes(int64(len(buf) * 8))
	b.ResetTimer()

	for range b.N {
		c.FilterBlock(buf)
	}
}
