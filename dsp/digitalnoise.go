package dsp

import "math"

func init() { Register(digitalNoiseEffect{}) }

// digitalNoiseEffect combines bit-depth reduction, sample-and-hold aliasing,
// and uniform noise injection for lo-fi digital textures. Grounded on
// original_source/core/effects/digital_noise.py.
type digitalNoiseEffect struct{}

func (digitalNoiseEffect) ID() EffectID        { return DigitalNoise }
func (digitalNoiseEffect) TailExtending() bool { return false }
func (digitalNoiseEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "bit_reduction", Display: "Bit Reduction", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
		{Key: "noise_amount", Display: "Noise Amount", Min: 0, Max: 1, Default: 0.3, Step: 0.01, Automatable: true},
		{Key: "sample_hold", Display: "Sample & Hold", Min: 1, Max: 64, Default: 1, Step: 1, Automatable: true},
	}
}

func (e digitalNoiseEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	bitReduction := clampf(params.Float("bit_reduction", 0.5), 0, 1)
	noiseAmount := clampf(params.Float("noise_amount", 0.3), 0, 1)
	sampleHold := params.Int("sample_hold", 1)

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n < 2 {
		return out, nil
	}
	seg := out.Slice(start, end)

	if bitReduction > 0.01 {
		levels := maxFloat(4, math.Floor(256*(1.0-bitReduction*0.95)))
		for i := range seg.Samples {
			v := float64(seg.Samples[i])
			seg.Samples[i] = float32(math.Round(v*levels) / levels)
		}
	}

	if sampleHold > 1 {
		sh := maxInt(2, minInt(64, sampleHold))
		for c := 0; c < ch; c++ {
			for i := 0; i < n-sh; i += sh {
				held := seg.Samples[i*ch+c]
				for k := 0; k < sh; k++ {
					seg.Samples[(i+k)*ch+c] = held
				}
			}
		}
	}

	if noiseAmount > 0.01 {
		noiseAmp := noiseAmount * 0.08
		rng := RNG()
		for i := range seg.Samples {
			n := (rng.Float64()*2 - 1) * noiseAmp
			seg.Samples[i] += float32(n)
		}
	}

	seg = microFade(seg, 64)
	copy(out.Samples[start*ch:end*ch], seg.Samples)
	return out.ClampInPlace(), nil
}
