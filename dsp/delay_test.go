package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayEffect_TailExtendsPastSelectionWhenNoAudioFollows(t *testing.T) {
	effect, ok := Get(Delay)
	require.True(t, ok)
	assert.True(t, effect.TailExtending())

	sr := 44100
	audio := NewBuffer(sr/10, 1, sr) // 100ms impulse, nothing after it
	audio.Samples[0] = 1

	out, err := effect.Process(audio, 0, audio.Frames(), sr, Params{
		"delay_ms": 100.0, "feedback": 0.5, "mix": 1.0,
	})
	require.NoError(t, err)
	assert.Greater(t, out.Frames(), audio.Frames(), "the echo tail should extend the buffer")
}

func TestDelayEffect_MixesIntoFollowingAudioInsteadOfAlwaysExtending(t *testing.T) {
	effect, _ := Get(Delay)
	sr := 44100

	selLen := sr / 10
	tailRoom := sr * 2 // plenty of trailing audio to absorb the echo tail
	audio := NewBuffer(selLen+tailRoom, 1, sr)
	audio.Samples[0] = 1

	out, err := effect.Process(audio, 0, selLen, sr, Params{
		"delay_ms": 50.0, "feedback": 0.3, "mix": 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, audio.Frames(), out.Frames(), "tail fits inside existing trailing audio, no extension needed")
}
