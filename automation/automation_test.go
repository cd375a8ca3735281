package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/dsp"
	"glitchmaker/envelope"
)

func TestApplyMulti_RampsGainAcrossRegion(t *testing.T) {
	effect, ok := dsp.Get(dsp.Volume)
	require.True(t, ok)

	sr := 44100
	audio := dsp.NewBuffer(sr, 1, sr) // 1 second, constant amplitude
	for i := range audio.Samples {
		audio.Samples[i] = 1
	}

	params := []Param{
		{Key: "gain_pct", Mode: ModeAutomated, DefaultVal: 0, TargetVal: 100, Curve: []envelope.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}},
	}

	out := ApplyMulti(audio, 0, audio.Frames(), effect, dsp.Params{}, params, sr)

	firstChunkPeak := maxAbs(out.Samples[:ChunkSize])
	lastChunkPeak := maxAbs(out.Samples[len(out.Samples)-ChunkSize:])
	assert.Less(t, firstChunkPeak, lastChunkPeak, "gain should ramp up across the region")
}

func TestApplyMulti_ConstantModeHoldsFixedValue(t *testing.T) {
	effect, _ := dsp.Get(dsp.Volume)
	sr := 44100
	audio := dsp.NewBuffer(sr/10, 1, sr)
	for i := range audio.Samples {
		audio.Samples[i] = 1
	}

	params := []Param{{Key: "gain_pct", Mode: ModeConstant, Value: 50}}
	out := ApplyMulti(audio, 0, audio.Frames(), effect, dsp.Params{}, params, sr)

	for _, s := range out.Samples {
		assert.InDelta(t, 0.5, s, 1e-4)
	}
}

func TestApplyMulti_EmptyRegionReturnsCloneUnchanged(t *testing.T) {
	effect, _ := dsp.Get(dsp.Volume)
	sr := 44100
	audio := dsp.NewBuffer(10, 1, sr)
	out := ApplyMulti(audio, 5, 5, effect, dsp.Params{}, nil, sr)
	assert.Equal(t, audio.Samples, out.Samples)
}

func maxAbs(samples []float32) float32 {
	var m float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > m {
			m = s
		}
	}
	return m
}
