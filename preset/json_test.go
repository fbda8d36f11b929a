package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-peq/dsp/peq"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadJSONOverridesDefaults(t *testing.T) {
	path := writePreset(t, `{
  "sample_rate": 44100,
  "stages": [
    {"enabled": true, "freq_hz": 80},
    {"gain_db": 4.5, "q": 2, "enabled": true},
    {},
    {"type": "high-shelf", "freq_hz": 8000, "gain_db": -3}
  ]
}`)

	f, err := LoadJSON(path)
	require.NoError(t, err)

	c, err := f.Build(0)
	require.NoError(t, err)
	require.Equal(t, len(peq.DefaultLayout), c.Len())

	hp := c.Stage(0)
	assert.Equal(t, peq.HighpassBrickwall, hp.Type())
	assert.True(t, hp.Enabled())
	assert.InDelta(t, 80*2/44100.0, hp.Cutoff(), 1e-15)

	pk := c.Stage(1)
	assert.Equal(t, peq.Peak, pk.Type())
	assert.InDelta(t, 4.5, pk.GainDB(), 0)
	assert.InDelta(t, 2.0, pk.Q(), 0)
	assert.True(t, pk.Enabled())

	assert.Equal(t, c.Stage(2).Params().Cutoff, peq.HzToCutoff(3000, 44100))
	assert.False(t, c.Stage(2).Enabled())

	hs := c.Stage(3)
	assert.Equal(t, peq.HighShelf, hs.Type())
	assert.InDelta(t, 1.0, hs.Q(), 0, "type change restarts Q")
	assert.InDelta(t, -3.0, hs.GainDB(), 0)
	assert.False(t, hs.Enabled())
}

func TestBuildRateOverride(t *testing.T) {
	f, err := Parse([]byte(`{"sample_rate": 44100}`))
	require.NoError(t, err)

	c, err := f.Build(96000)
	require.NoError(t, err)
	assert.InDelta(t, peq.HzToCutoff(100, 96000), c.Stage(0).Cutoff(), 1e-15)

	assert.InDelta(t, DefaultSampleRate, (&File{}).Rate(0), 0)
	assert.InDelta(t, 44100.0, f.Rate(-1), 0)
}

func TestBuildNilFile(t *testing.T) {
	var f *File

	c, err := f.Build(48000)
	require.NoError(t, err)
	assert.Equal(t, len(peq.DefaultLayout), c.Len())
}

func TestBuildAppendsStages(t *testing.T) {
	f, err := Parse([]byte(`{
  "base": "empty",
  "brickwall": {"order": 4, "ripple_db": 0.1, "attenuation_db": 60},
  "stages": [
    {"type": "lowpass-brickwall", "freq_hz": 10000},
    {"type": "highpass-flat", "freq_hz": 30, "q": 3, "enabled": false}
  ]
}`))
	require.NoError(t, err)

	c, err := f.Build(48000)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	lp := c.Stage(0)
	assert.Equal(t, 2, lp.NumSections())
	assert.True(t, lp.Enabled())
	assert.InDelta(t, 1.0, lp.Q(), 0)

	hp := c.Stage(1)
	assert.Equal(t, 8, hp.Order())
	assert.False(t, hp.Enabled())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `{"gain": 1}`},
		{"unknown type", `{"stages": [{"type": "bandpass"}]}`},
		{"bad base", `{"base": "flat"}`},
		{"zero sample rate", `{"sample_rate": 0}`},
		{"freq above nyquist", `{"stages": [{"freq_hz": 30000}]}`},
		{"negative q", `{"stages": [{"q": -1}]}`},
		{"flat slope", `{"stages": [{"type": "lowpass-flat", "q": 5}]}`},
		{"incomplete new stage", `{"base": "empty", "stages": [{"type": "peak"}]}`},
		{"brickwall order", `{"brickwall": {"order": 0}}`},
		{"attenuation below ripple", `{"brickwall": {"ripple_db": 3, "attenuation_db": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.content))
			if err != nil {
				return
			}

			_, err = f.Build(48000)
			require.Error(t, err)
		})
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	_, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestSaveAndReloadChain(t *testing.T) {
	src, err := peq.DefaultChain(48000)
	require.NoError(t, err)

	require.NoError(t, src.Update(2, func(p peq.Params) peq.Params {
		p.GainDB = -6
		p.Q = 3
		p.Enabled = true
		return p
	}))

	path := filepath.Join(t.TempDir(), "saved.json")
	require.NoError(t, SaveJSON(path, FromChain(src, 48000)))

	f, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, BaseEmpty, f.Base)

	c, err := f.Build(0)
	require.NoError(t, err)
	require.Equal(t, src.Len(), c.Len())

	for i := 0; i < c.Len(); i++ {
		want, got := src.Stage(i).Params(), c.Stage(i).Params()
		assert.Equal(t, want.Type, got.Type, "stage %d", i)
		assert.InDelta(t, want.Cutoff, got.Cutoff, 1e-15, "stage %d", i)
		assert.InDelta(t, want.GainDB, got.GainDB, 0, "stage %d", i)
		assert.InDelta(t, want.Q, got.Q, 0, "stage %d", i)
		assert.Equal(t, want.Enabled, got.Enabled, "stage %d", i)
	}
}
