package dsp

import "math"

func init() { Register(tremoloEffect{}) }

// tremoloEffect is a periodic amplitude wobble with sine/square/triangle/saw
// LFO shapes. Grounded on original_source/core/effects/tremolo.py.
type tremoloEffect struct{}

func (tremoloEffect) ID() EffectID        { return Tremolo }
func (tremoloEffect) TailExtending() bool { return false }
func (tremoloEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "rate_hz", Display: "Rate (Hz)", Min: 0.5, Max: 30, Default: 5, Step: 0.5, Automatable: true},
		{Key: "depth", Display: "Depth", Min: 0, Max: 1, Default: 0.7, Step: 0.01, Automatable: true},
	}
}

func (e tremoloEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	rateHz := params.Float("rate_hz", 5.0)
	depth := clampf(params.Float("depth", 0.7), 0, 1)
	shape := params.String("shape", "sine")

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}

	for i := 0; i < n; i++ {
		t := float64(i) / float64(sr)
		var lfo float64
		switch shape {
		case "square":
			if math.Sin(2*math.Pi*rateHz*t) >= 0 {
				lfo = 1
			}
		case "triangle":
			lfo = 2.0 * math.Abs(2.0*(rateHz*t-math.Floor(rateHz*t+0.5)))
		case "saw":
			lfo = math.Mod(rateHz*t, 1.0)
		default: // sine
			lfo = 0.5 * (1.0 + math.Sin(2*math.Pi*rateHz*t))
		}
		envelope := 1.0 - depth*(1.0-lfo)
		for c := 0; c < ch; c++ {
			idx := (start+i)*ch + c
			out.Samples[idx] = float32(float64(out.Samples[idx]) * envelope)
		}
	}
	return out.ClampInPlace(), nil
}
