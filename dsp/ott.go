package dsp

import "math"

func init() { Register(ottEffect{}) }

// ottEffect is a simplified single-band take on the classic "over the top"
// multiband upward/downward compressor: a fast envelope follower drives
// gain toward a target RMS, with depth controlling how hard the effect
// pulls levels toward that target. Not present as a standalone file in
// original_source (see DESIGN.md); the single-band envelope-follower
// approach mirrors saturation.go/distortion.go's simplifications of their
// multi-stage originals.
type ottEffect struct{}

func (ottEffect) ID() EffectID        { return OTT }
func (ottEffect) TailExtending() bool { return false }
func (ottEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "depth", Display: "Depth", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
	}
}

func (e ottEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	depth := clampf(params.Float("depth", 0.5), 0, 1)
	const targetRMS = 0.25
	const attack = 0.01
	const release = 0.05

	out := audio.Clone()
	ch := out.Channels
	for c := 0; c < ch; c++ {
		var env float32
		for i := start; i < end && i < out.Frames(); i++ {
			x := out.Samples[i*ch+c]
			mag := float32(math.Abs(float64(x)))
			coeff := float32(release)
			if mag > env {
				coeff = float32(attack)
			}
			env += coeff * (mag - env)
			if env < 1e-6 {
				continue
			}
			gain := float32(targetRMS) / env
			// Blend toward unity gain by (1-depth) so depth=0 is a no-op.
			gain = 1 + depth*(gain-1)
			out.Samples[i*ch+c] = x * gain
		}
	}
	return out.ClampInPlace(), nil
}
