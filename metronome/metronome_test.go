package metronome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsAndClampedSetters(t *testing.T) {
	m := New(44100)
	assert.Equal(t, 120.0, m.BPM)
	assert.Equal(t, 4, m.BeatsPerBar)

	m.SetBPM(5)
	assert.Equal(t, 20.0, m.BPM, "BPM clamps to [20, 300]")
	m.SetBPM(1000)
	assert.Equal(t, 300.0, m.BPM)

	m.SetBeatsPerBar(0)
	assert.Equal(t, 1, m.BeatsPerBar, "beats per bar clamps to [1, 12]")
	m.SetBeatsPerBar(99)
	assert.Equal(t, 12, m.BeatsPerBar)
}

func TestSamplesPerBeat_MatchesBPM(t *testing.T) {
	m := New(44100)
	m.SetBPM(120)
	require.Equal(t, 44100*60/120, m.SamplesPerBeat())
}

func TestMixInto_DoesNothingWhenDisabled(t *testing.T) {
	m := New(44100)
	m.SetBPM(120)
	out := make([]float32, 44100*2)

	m.MixInto(out, 2, 0, 44100)

	for _, s := range out {
		assert.Equal(t, float32(0), s)
	}
}

func TestMixInto_PlacesClickAtEachBeatBoundary(t *testing.T) {
	m := New(44100)
	m.Enabled = true
	m.SetBPM(120)
	m.SetVolume(1)
	spb := m.SamplesPerBeat()

	frames := spb*2 + 10
	out := make([]float32, frames*2)
	m.MixInto(out, 2, 0, frames)

	// The sine burst is zero at its first sample, so check the frame right
	// after each beat boundary.
	assert.NotEqual(t, float32(0), out[1*2], "a beat starts exactly at position 0")
	assert.NotEqual(t, float32(0), out[(spb+1)*2], "second beat boundary should also carry a click")
}

func TestMixInto_CarriesClickTailAcrossCallbackBoundary(t *testing.T) {
	m := New(44100)
	m.Enabled = true
	m.SetBPM(120)
	m.SetVolume(1)
	spb := m.SamplesPerBeat()

	full := make([]float32, (spb+100)*2)
	m.MixInto(full, 2, 0, spb+100)

	firstCall := make([]float32, (spb+5)*2)
	m.MixInto(firstCall, 2, 0, spb+5)
	secondCall := make([]float32, 95*2)
	m.MixInto(secondCall, 2, spb+5, 95)

	assert.NotEqual(t, float32(0), secondCall[0], "the click that started just before the boundary should carry into the next callback")
	assert.Equal(t, full[(spb+5)*2], secondCall[0], "the carried tail matches the same frame of an unsplit call")
}
