package dsp

import "math"

func init() { Register(panEffect{}) }

// panEffect applies an equal-power stereo pan, optionally summing to mono
// first. Not present as a standalone file in original_source (see
// DESIGN.md); built from spec.md's param contract.
type panEffect struct{}

func (panEffect) ID() EffectID        { return Pan }
func (panEffect) TailExtending() bool { return false }
func (panEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "pan", Display: "Pan", Min: -1, Max: 1, Default: 0, Step: 0.01, Automatable: true},
	}
}

func (e panEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	pan := clampf(params.Float("pan", 0), -1, 1)
	mono := params.Bool("mono", false)

	out := audio.ToStereo()
	// ToStereo re-derives channel count; preserve original sample rate.
	out.SampleRate = audio.SampleRate

	angle := (pan + 1) * math.Pi / 4 // 0..pi/2
	gainL := float32(math.Cos(angle))
	gainR := float32(math.Sin(angle))

	for i := start; i < end && i < out.Frames(); i++ {
		l := out.Samples[i*2]
		r := out.Samples[i*2+1]
		if mono {
			m := (l + r) / 2
			l, r = m, m
		}
		out.Samples[i*2] = l * gainL
		out.Samples[i*2+1] = r * gainR
	}
	return out.ClampInPlace(), nil
}
