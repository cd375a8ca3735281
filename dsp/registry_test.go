package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllEffectsRegistered(t *testing.T) {
	for _, id := range []EffectID{
		Volume, Filter, Pan, Reverse, PitchShift, TimeStretch, TapeStop, WaveOndulee, Autotune,
		Saturation, Distortion, Bitcrusher, Chorus, Phaser, Tremolo, RingMod, Delay, Vinyl, OTT,
		Robot, DigitalNoise, Stutter, Granular, Shuffle, BufferFreeze, Datamosh,
	} {
		_, ok := Get(id)
		assert.Truef(t, ok, "effect %q should be registered via init()", id)
	}
}

func TestRegistry_MustGetPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustGet(EffectID("not-a-real-effect")) })
}

func TestVolumeEffect_Process(t *testing.T) {
	effect, ok := Get(Volume)
	require.True(t, ok)

	audio := NewBuffer(4, 1, 44100)
	audio.Samples = []float32{0.1, 0.2, 0.3, 0.4}

	out, err := effect.Process(audio, 0, 4, 44100, Params{"gain_pct": 50.0})
	require.NoError(t, err)
	for i, s := range audio.Samples {
		assert.InDelta(t, s*0.5, out.Samples[i], 1e-6)
	}
}

func TestVolumeEffect_ProcessRespectsRange(t *testing.T) {
	effect, _ := Get(Volume)
	audio := NewBuffer(4, 1, 44100)
	audio.Samples = []float32{1, 1, 1, 1}

	out, err := effect.Process(audio, 1, 3, 44100, Params{"gain_pct": 0.0})
	require.NoError(t, err)
	assert.Equal(t, float32(1), out.Samples[0], "outside [start,end) untouched")
	assert.Equal(t, float32(0), out.Samples[1])
	assert.Equal(t, float32(0), out.Samples[2])
	assert.Equal(t, float32(1), out.Samples[3])
}
