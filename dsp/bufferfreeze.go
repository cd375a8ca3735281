package dsp

func init() { Register(bufferFreezeEffect{}) }

// bufferFreezeEffect captures a short grain at the start of the selection
// and loops it to fill the selection, creating a drone/static texture.
// Grounded on original_source/core/effects/buffer_freeze.py.
type bufferFreezeEffect struct{}

func (bufferFreezeEffect) ID() EffectID        { return BufferFreeze }
func (bufferFreezeEffect) TailExtending() bool { return false }
func (bufferFreezeEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "buffer_ms", Display: "Grain (ms)", Min: 5, Max: 2000, Default: 80, Step: 5, Automatable: true},
	}
}

func (e bufferFreezeEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	grainMs := params.Float("buffer_ms", 80.0)
	repeats := params.Int("repeats", 0)

	out := audio.Clone()
	segment := out.Slice(start, end)
	if segment.Frames() == 0 {
		return out, nil
	}

	grainLen := maxInt(64, int(grainMs*float64(sr)/1000.0))
	grainLen = minInt(grainLen, segment.Frames())
	grain := segment.Slice(0, grainLen)
	grain = microFade(grain, minInt(32, grainLen/4))

	targetLen := end - start
	nReps := repeats
	if nReps <= 0 {
		nReps = maxInt(1, targetLen/grainLen+1)
	}

	parts := make([]Buffer, nReps)
	for i := range parts {
		parts[i] = grain
	}
	frozen := Concat(parts...)

	if frozen.Frames() > targetLen {
		frozen = frozen.Slice(0, targetLen)
	} else if frozen.Frames() < targetLen {
		pad := NewBuffer(targetLen-frozen.Frames(), frozen.Channels, frozen.SampleRate)
		frozen = Concat(frozen, pad)
	}

	copy(out.Samples[start*out.Channels:end*out.Channels], frozen.Samples)
	return out.ClampInPlace(), nil
}
