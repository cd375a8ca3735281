package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleEffect_ReverseModeIsDeterministicAndPreservesLength(t *testing.T) {
	effect, ok := Get(Shuffle)
	require.True(t, ok)

	frames := 800
	audio := NewBuffer(frames, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = float32(i)
	}

	out, err := effect.Process(audio, 0, frames, 44100, Params{"num_slices": 8.0, "mode": "reverse"})
	require.NoError(t, err)
	assert.Equal(t, frames, out.Frames())

	again, err := effect.Process(audio, 0, frames, 44100, Params{"num_slices": 8.0, "mode": "reverse"})
	require.NoError(t, err)
	assert.Equal(t, out.Samples, again.Samples, "reverse mode must not depend on the RNG")
}

func TestShuffleEffect_RandomModeIsDeterministicGivenFixedSeed(t *testing.T) {
	effect, _ := Get(Shuffle)
	frames := 800
	audio := NewBuffer(frames, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = float32(i)
	}

	SeedRNG(7, 7)
	out1, err := effect.Process(audio, 0, frames, 44100, Params{"num_slices": 8.0})
	require.NoError(t, err)

	SeedRNG(7, 7)
	out2, err := effect.Process(audio, 0, frames, 44100, Params{"num_slices": 8.0})
	require.NoError(t, err)

	assert.Equal(t, out1.Samples, out2.Samples, "same seed must reorder identically")
}

func TestShuffleEffect_ClampsSlicesOutOfRange(t *testing.T) {
	effect, _ := Get(Shuffle)
	frames := 200
	audio := NewBuffer(frames, 1, 44100)

	out, err := effect.Process(audio, 0, frames, 44100, Params{"num_slices": 999.0, "mode": "reverse"})
	require.NoError(t, err)
	assert.Equal(t, frames, out.Frames())
}
