package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"glitchmaker/dsp"
)

func TestEval_LinearWithZeroBendMatchesInterpolateCurve(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		assert.InDelta(t, InterpolateCurve(pts, x), Eval(pts, []float64{0}, x), 1e-9)
	}
}

func TestEval_ClampsOutsidePointRange(t *testing.T) {
	pts := []Point{{X: 0.2, Y: 0.5}, {X: 0.8, Y: 1}}
	assert.Equal(t, 0.5, Eval(pts, nil, 0))
	assert.Equal(t, 1.0, Eval(pts, nil, 1))
}

func TestEval_BendPullsCurveAwayFromMidpoint(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	linear := Eval(pts, []float64{0}, 0.5)
	bent := Eval(pts, []float64{0.4}, 0.5)
	assert.Greater(t, bent, linear)
}

func TestCurve_ClampsToUnitRange(t *testing.T) {
	pts := []Point{{X: 0, Y: 2}, {X: 1, Y: -2}}
	curve := Curve(10, pts, nil)
	for _, v := range curve {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestApplyFade_FadeInRampsFromSilence(t *testing.T) {
	audio := dsp.NewBuffer(100, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = 1
	}
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}

	out := ApplyFade(audio, 50, pts, nil, FadeIn)

	assert.InDelta(t, 0, out.Samples[0], 1e-6)
	assert.InDelta(t, 1, out.Samples[99], 1e-6)
	assert.Less(t, out.Samples[0], out.Samples[49])
}

func TestApplyFade_FadeOutRampsToSilenceAtEnd(t *testing.T) {
	audio := dsp.NewBuffer(100, 1, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = 1
	}
	pts := []Point{{X: 0, Y: 1}, {X: 1, Y: 0}}

	out := ApplyFade(audio, 50, pts, nil, FadeOut)

	assert.InDelta(t, 1, out.Samples[0], 1e-6)
	assert.Less(t, out.Samples[99], out.Samples[50])
}

func TestInterpolateCurve_SingleAndEmptyPoints(t *testing.T) {
	assert.Equal(t, 0.0, InterpolateCurve(nil, 0.5))
	assert.Equal(t, 0.7, InterpolateCurve([]Point{{X: 0.3, Y: 0.7}}, 0.9))
}
