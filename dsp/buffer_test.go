package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_FramesAndClone(t *testing.T) {
	b := NewBuffer(10, 2, 44100)
	assert.Equal(t, 10, b.Frames())

	b.Samples[0] = 0.5
	c := b.Clone()
	c.Samples[0] = -0.5
	assert.Equal(t, float32(0.5), b.Samples[0], "Clone must not alias the source")
}

func TestBuffer_Slice(t *testing.T) {
	b := NewBuffer(10, 1, 44100)
	for i := range b.Samples {
		b.Samples[i] = float32(i)
	}
	s := b.Slice(3, 6)
	require.Equal(t, 3, s.Frames())
	assert.Equal(t, []float32{3, 4, 5}, s.Samples)
}

func TestBuffer_ClampInPlace(t *testing.T) {
	b := Buffer{Samples: []float32{2, -2, float32(math.NaN()), float32(math.Inf(1))}, Channels: 1, SampleRate: 44100}
	b.ClampInPlace()
	assert.Equal(t, []float32{1, -1, 0, 0}, b.Samples)
}

func TestBuffer_ToStereo(t *testing.T) {
	mono := NewBuffer(4, 1, 44100)
	for i := range mono.Samples {
		mono.Samples[i] = float32(i) / 4
	}
	stereo := mono.ToStereo()
	require.Equal(t, 2, stereo.Channels)
	require.Equal(t, 4, stereo.Frames())
	for i := 0; i < 4; i++ {
		assert.Equal(t, mono.Samples[i], stereo.Samples[i*2])
		assert.Equal(t, mono.Samples[i], stereo.Samples[i*2+1])
	}
}

func TestBuffer_Concat(t *testing.T) {
	a := NewBuffer(2, 1, 44100)
	a.Samples[0], a.Samples[1] = 1, 2
	b := NewBuffer(2, 1, 44100)
	b.Samples[0], b.Samples[1] = 3, 4

	out := Concat(a, b)
	assert.Equal(t, []float32{1, 2, 3, 4}, out.Samples)
}

func TestBuffer_PeakAndRMS(t *testing.T) {
	b := NewBuffer(4, 1, 44100)
	b.Samples = []float32{1, -1, 0.5, -0.5}
	assert.InDelta(t, 1.0, b.Peak(), 1e-9)
	assert.InDelta(t, math.Sqrt((1+1+0.25+0.25)/4), b.RMS(), 1e-9)
}
