package dsp

import "math"

func init() { Register(ringModEffect{}) }

// ringModEffect multiplies the signal by a sine carrier, classic ring
// modulation. Not present as a standalone file in original_source (see
// DESIGN.md); the carrier-generation technique mirrors wave_ondulee.go.
type ringModEffect struct{}

func (ringModEffect) ID() EffectID        { return RingMod }
func (ringModEffect) TailExtending() bool { return false }
func (ringModEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "frequency", Display: "Frequency (Hz)", Min: 20, Max: 5000, Default: 440, Step: 1, Automatable: true},
		{Key: "mix", Display: "Mix", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
	}
}

func (e ringModEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	freq := params.Float("frequency", 440)
	mix := clampf(params.Float("mix", 0.5), 0, 1)

	out := audio.Clone()
	ch := out.Channels
	for i := start; i < end && i < out.Frames(); i++ {
		carrier := float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(sr)))
		for c := 0; c < ch; c++ {
			dry := out.Samples[i*ch+c]
			wet := dry * carrier
			out.Samples[i*ch+c] = dry*float32(1-mix) + wet*float32(mix)
		}
	}
	return out.ClampInPlace(), nil
}
