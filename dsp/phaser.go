package dsp

import "math"

func init() { Register(phaserEffect{}) }

// phaserEffect is a cascade of first-order allpass filters driven by an LFO,
// with feedback and stereo spread. Must run sample-by-sample because of the
// feedback path. Grounded on original_source/core/effects/phaser.py.
type phaserEffect struct{}

func (phaserEffect) ID() EffectID        { return Phaser }
func (phaserEffect) TailExtending() bool { return false }
func (phaserEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "rate_hz", Display: "Rate (Hz)", Min: 0.05, Max: 10, Default: 0.5, Step: 0.05, Automatable: true},
		{Key: "depth", Display: "Depth", Min: 0, Max: 1, Default: 0.7, Step: 0.01, Automatable: true},
		{Key: "stages", Display: "Stages", Min: 1, Max: 12, Default: 4, Step: 1, Automatable: false},
		{Key: "feedback", Display: "Feedback", Min: 0, Max: 0.95, Default: 0, Step: 0.01, Automatable: true},
		{Key: "mix", Display: "Mix", Min: 0, Max: 1, Default: 0.7, Step: 0.01, Automatable: true},
	}
}

func (e phaserEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	rateHz := params.Float("rate_hz", 0.5)
	depth := params.Float("depth", 0.7)
	stages := params.Int("stages", 4)
	if stages < 1 {
		stages = 1
	}
	if stages > 12 {
		stages = 12
	}
	feedback := clampf(params.Float("feedback", 0), 0, 0.95)
	mix := clampf(params.Float("mix", 0.7), 0, 1)

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}

	minFreq := 100.0
	maxFreq := math.Min(4000.0, float64(sr)/2-200)

	for c := 0; c < ch; c++ {
		phaseOffset := float64(c) * math.Pi * 0.5
		apState := make([]float64, stages)
		var fbSample float64
		for i := 0; i < n; i++ {
			t := float64(i) / float64(sr)
			lfo := 0.5 * (1 + math.Sin(2*math.Pi*rateHz*t+phaseOffset))
			freq := minFreq + (maxFreq-minFreq)*depth*lfo
			freq = clampf(freq, 20, float64(sr)/2-100)
			tanW := math.Tan(math.Pi * freq / float64(sr))
			a := (tanW - 1) / (tanW + 1)

			x := float64(out.Samples[(start+i)*ch+c])
			inp := x + fbSample*feedback

			sample := inp
			for s := 0; s < stages; s++ {
				apOut := a*sample + apState[s]
				apState[s] = sample - a*apOut
				sample = apOut
			}
			fbSample = sample
			y := sample

			out.Samples[(start+i)*ch+c] = float32(x*(1-mix) + y*mix)
		}
	}
	return out.ClampInPlace(), nil
}
