package dsp

func init() { Register(vinylEffect{}) }

// vinylEffect adds sparse crackle/pop impulses plus a gentle one-pole
// high-frequency rolloff, an "amount"-scaled lo-fi vinyl texture. Not
// present as a standalone file in original_source (see DESIGN.md); the
// noise-injection idiom mirrors digital_noise.go.
type vinylEffect struct{}

func (vinylEffect) ID() EffectID        { return Vinyl }
func (vinylEffect) TailExtending() bool { return false }
func (vinylEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "amount", Display: "Amount", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
	}
}

func (e vinylEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	amount := clampf(params.Float("amount", 0.5), 0, 1)

	out := audio.Clone()
	ch := out.Channels
	rng := RNG()

	// Gentle rolloff: one-pole lowpass blended by amount.
	a := float32(0.15 + 0.5*amount)
	for c := 0; c < ch; c++ {
		var prev float32
		for i := start; i < end && i < out.Frames(); i++ {
			x := out.Samples[i*ch+c]
			y := prev + a*(x-prev)
			out.Samples[i*ch+c] = y
			prev = y
		}
	}

	// Sparse crackle: random short impulses, density scaled by amount.
	crackleProb := 0.002 * amount
	for i := start; i < end && i < out.Frames(); i++ {
		if rng.Float64() < crackleProb {
			pop := float32((rng.Float64()*2 - 1) * 0.4 * amount)
			for c := 0; c < ch; c++ {
				out.Samples[i*ch+c] += pop
			}
		}
	}
	return out.ClampInPlace(), nil
}
