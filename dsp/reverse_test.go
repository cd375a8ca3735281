package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseEffect_ReversesSelectionAwayFromFadeSeams(t *testing.T) {
	effect, ok := Get(Reverse)
	require.True(t, ok)

	frames := 1000
	audio := NewBuffer(frames, 1, 44100)
	for i := 0; i < frames; i++ {
		audio.Samples[i] = float32(i) / float32(frames)
	}

	out, err := effect.Process(audio, 0, frames, 44100, Params{})
	require.NoError(t, err)

	// Away from the micro-fade seams (first/last ~64 samples) the
	// reversal should be exact.
	for i := 200; i < 800; i++ {
		assert.InDelta(t, audio.Samples[frames-1-i], out.Samples[i], 1e-6)
	}
}

func TestReverseEffect_LeavesAudioOutsideSelectionUntouched(t *testing.T) {
	effect, _ := Get(Reverse)
	frames := 200
	audio := NewBuffer(frames, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = float32(i)
	}

	out, err := effect.Process(audio, 50, 150, 44100, Params{})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		assert.Equal(t, audio.Samples[i], out.Samples[i])
	}
	for i := 150; i < 200; i++ {
		assert.Equal(t, audio.Samples[i], out.Samples[i])
	}
}
