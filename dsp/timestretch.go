package dsp

func init() { Register(timeStretchEffect{}) }

// timeStretchEffect resamples the selection to factor*len, changing its
// duration without attempting pitch correction. Tail-extending. Grounded on
// original_source/core/effects/time_stretch.py.
type timeStretchEffect struct{}

func (timeStretchEffect) ID() EffectID        { return TimeStretch }
func (timeStretchEffect) TailExtending() bool { return true }
func (timeStretchEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "factor", Display: "Factor", Min: 0.1, Max: 8, Default: 1.0, Step: 0.05, Automatable: true},
	}
}

func (e timeStretchEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	factor := params.Float("factor", 1.0)
	if factor < 0.1 {
		factor = 0.1
	}
	if factor > 8 {
		factor = 8
	}

	segment := audio.Slice(start, end)
	if segment.Frames() == 0 {
		return audio.Clone(), nil
	}

	newLen := maxInt(64, int(float64(segment.Frames())*factor))
	stretched := resampleBuffer(segment, newLen)
	stretched = microFade(stretched, 64)

	before := audio.Slice(0, start)
	after := audio.Slice(end, audio.Frames())
	out := Concat(before, stretched, after)
	return out.ClampInPlace(), nil
}
