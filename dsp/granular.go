package dsp

func init() { Register(granularEffect{}) }

// granularEffect slices the selection into grains, partially shuffles them
// (swap count driven by randomize), optionally duplicates grains when
// density > 1, then truncates/pads back to the original length. Grounded on
// original_source/core/effects/granular.py.
type granularEffect struct{}

func (granularEffect) ID() EffectID        { return Granular }
func (granularEffect) TailExtending() bool { return false }
func (granularEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "grain_ms", Display: "Grain (ms)", Min: 5, Max: 200, Default: 50, Step: 1, Automatable: true},
		{Key: "density", Display: "Density", Min: 0.1, Max: 10, Default: 2, Step: 0.1, Automatable: true},
		{Key: "chaos", Display: "Chaos", Min: 0, Max: 1, Default: 0.3, Step: 0.01, Automatable: true},
	}
}

func (e granularEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	grainMs := params.Float("grain_size_ms", params.Float("grain_ms", 50.0))
	density := params.Float("density", 1.0)
	randomize := params.Float("chaos", params.Float("randomize", 0.5))

	out := audio.Clone()
	segment := out.Slice(start, end)
	segFrames := segment.Frames()
	if segFrames == 0 {
		return out, nil
	}

	grainSamples := maxInt(64, int(grainMs*float64(sr)/1000.0))
	nGrains := maxInt(1, segFrames/grainSamples)

	var grains []Buffer
	for i := 0; i < nGrains; i++ {
		s := i * grainSamples
		en := minInt(s+grainSamples, segFrames)
		g := segment.Slice(s, en)
		g = microFade(g, minInt(32, g.Frames()/4))
		grains = append(grains, g)
	}
	if len(grains) == 0 {
		return out, nil
	}

	rng := RNG()
	indices := make([]int, len(grains))
	for i := range indices {
		indices[i] = i
	}
	if randomize > 0 {
		nSwaps := int(float64(len(grains)) * randomize)
		for k := 0; k < nSwaps; k++ {
			i := rng.IntN(len(grains))
			j := rng.IntN(len(grains))
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	var outputGrains []Buffer
	for _, idx := range indices {
		outputGrains = append(outputGrains, grains[idx])
		if density > 1.0 && rng.Float64() < (density-1.0) {
			outputGrains = append(outputGrains, grains[idx])
		}
	}

	output := Concat(outputGrains...)
	targetLen := end - start
	if output.Frames() > targetLen {
		output = output.Slice(0, targetLen)
	} else if output.Frames() < targetLen {
		pad := NewBuffer(targetLen-output.Frames(), output.Channels, output.SampleRate)
		output = Concat(output, pad)
	}

	copy(out.Samples[start*out.Channels:end*out.Channels], output.Samples)
	return out.ClampInPlace(), nil
}
