package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitalNoiseEffect_NoiseInjectsPerturbationGivenFixedSeed(t *testing.T) {
	effect, ok := Get(DigitalNoise)
	require.True(t, ok)

	frames := 400
	audio := NewBuffer(frames, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = 0.5
	}

	SeedRNG(3, 3)
	out, err := effect.Process(audio, 0, frames, 44100, Params{
		"bit_reduction": 0.0, "noise_amount": 1.0, "sample_hold": 1.0,
	})
	require.NoError(t, err)

	differs := false
	for i := 100; i < 300; i++ {
		if out.Samples[i] != audio.Samples[i] {
			differs = true
			break
		}
	}
	assert.True(t, differs, "noise should perturb samples away from the fade seams")
}

func TestDigitalNoiseEffect_SampleHoldFlattensRuns(t *testing.T) {
	effect, _ := Get(DigitalNoise)
	frames := 400
	audio := NewBuffer(frames, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = float32(i%7) * 0.1
	}

	out, err := effect.Process(audio, 0, frames, 44100, Params{
		"bit_reduction": 0.0, "noise_amount": 0.0, "sample_hold": 8.0,
	})
	require.NoError(t, err)

	// Within one held block (away from the fade seams) every sample
	// should match the block's first value.
	held := out.Samples[200]
	for i := 200; i < 208; i++ {
		assert.Equal(t, held, out.Samples[i])
	}
}

func TestDigitalNoiseEffect_ZeroParamsLeavesAudioNearlyUnchanged(t *testing.T) {
	effect, _ := Get(DigitalNoise)
	frames := 300
	audio := NewBuffer(frames, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = 0.25
	}

	out, err := effect.Process(audio, 0, frames, 44100, Params{
		"bit_reduction": 0.0, "noise_amount": 0.0, "sample_hold": 1.0,
	})
	require.NoError(t, err)

	for i := 100; i < 200; i++ {
		assert.InDelta(t, 0.25, out.Samples[i], 1e-6)
	}
}
