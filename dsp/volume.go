package dsp

func init() { Register(volumeEffect{}) }

// volumeEffect scales amplitude by a percentage gain.
// Grounded on original_source/core/effects/volume.py.
type volumeEffect struct{}

func (volumeEffect) ID() EffectID        { return Volume }
func (volumeEffect) TailExtending() bool { return false }
func (volumeEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "gain_pct", Display: "Gain (%)", Min: 0, Max: 1000, Default: 100, Step: 1, Automatable: true},
	}
}

func (e volumeEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	gainPct := params.Float("gain_pct", 100)
	gain := float32(gainPct / 100.0)

	out := audio.Clone()
	ch := out.Channels
	for i := start; i < end && i < out.Frames(); i++ {
		for c := 0; c < ch; c++ {
			out.Samples[i*ch+c] *= gain
		}
	}
	return out.ClampInPlace(), nil
}
