package dsp

import "math"

func init() { Register(chorusEffect{}) }

// chorusEffect doubles the signal with per-voice sinusoidal delay-time
// modulation for thickness. Grounded on
// original_source/core/effects/chorus.py.
type chorusEffect struct{}

func (chorusEffect) ID() EffectID        { return Chorus }
func (chorusEffect) TailExtending() bool { return false }
func (chorusEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "depth_ms", Display: "Depth (ms)", Min: 0.1, Max: 20, Default: 5, Step: 0.1, Automatable: true},
		{Key: "rate_hz", Display: "Rate (Hz)", Min: 0.1, Max: 10, Default: 1.5, Step: 0.1, Automatable: true},
		{Key: "mix", Display: "Mix", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
	}
}

func (e chorusEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	depthMs := params.Float("depth_ms", 5.0)
	rateHz := params.Float("rate_hz", 1.5)
	mix := clampf(params.Float("mix", 0.5), 0, 1)
	voices := params.Int("voices", 2)
	if voices < 1 {
		voices = 1
	}

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}
	depthSamp := int(depthMs * float64(sr) / 1000.0)

	dry := out.Slice(start, end)
	result := dry.Clone()

	for v := 0; v < voices; v++ {
		phase := 2.0 * math.Pi * float64(v) / float64(voices)
		for c := 0; c < ch; c++ {
			for i := 0; i < n; i++ {
				t := float64(i) / float64(sr)
				delayMod := int(float64(depthSamp) * (1 + math.Sin(2*math.Pi*rateHz*t+phase)) / 2.0)
				idx := i - delayMod
				if idx < 0 {
					idx = 0
				}
				if idx > n-1 {
					idx = n - 1
				}
				result.Samples[i*ch+c] += dry.Samples[idx*ch+c]
			}
		}
	}

	denom := float32(1 + voices)
	for i := range result.Samples {
		result.Samples[i] /= denom
	}

	for i := 0; i < n*ch; i++ {
		out.Samples[start*ch+i] = dry.Samples[i]*float32(1-mix) + result.Samples[i]*float32(mix)
	}
	return out.ClampInPlace(), nil
}
