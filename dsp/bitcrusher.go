package dsp

import "math"

func init() { Register(bitcrusherEffect{}) }

// bitcrusherEffect quantizes to 2^bit_depth levels then sample-and-holds
// every downsample-th sample. Grounded on
// original_source/core/effects/bitcrusher.py.
type bitcrusherEffect struct{}

func (bitcrusherEffect) ID() EffectID        { return Bitcrusher }
func (bitcrusherEffect) TailExtending() bool { return false }
func (bitcrusherEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "bit_depth", Display: "Bit Depth", Min: 2, Max: 16, Default: 16, Step: 1, Automatable: true},
		{Key: "downsample", Display: "Downsample", Min: 1, Max: 64, Default: 1, Step: 1, Automatable: true},
	}
}

func (e bitcrusherEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	bitDepth := params.Int("bit_depth", 8)
	if bitDepth < 1 {
		bitDepth = 1
	}
	if bitDepth > 16 {
		bitDepth = 16
	}
	downsample := params.Int("downsample", 4)
	if downsample < 1 {
		downsample = 1
	}
	if downsample > 64 {
		downsample = 64
	}

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}

	levels := math.Pow(2, float64(bitDepth))
	for i := start; i < end; i++ {
		for c := 0; c < ch; c++ {
			v := float64(out.Samples[i*ch+c])
			out.Samples[i*ch+c] = float32(math.Round(v*levels) / levels)
		}
	}

	if downsample > 1 {
		for c := 0; c < ch; c++ {
			var held float32
			for f := 0; f < n; f++ {
				if f%downsample == 0 {
					held = out.Samples[(start+f)*ch+c]
				}
				out.Samples[(start+f)*ch+c] = held
			}
		}
	}
	return out.ClampInPlace(), nil
}
