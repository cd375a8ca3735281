package dsp

func init() { Register(stutterEffect{}) }

// stutterEffect repeats the selection repeats times in normal/halving/
// reverse_alt mode with optional per-repeat decay. Tail-extending.
// Grounded on original_source/core/effects/stutter.py.
type stutterEffect struct{}

func (stutterEffect) ID() EffectID        { return Stutter }
func (stutterEffect) TailExtending() bool { return true }
func (stutterEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "repeats", Display: "Repeats", Min: 1, Max: 64, Default: 4, Step: 1, Automatable: true},
	}
}

func (e stutterEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	repeats := params.Int("repeats", 4)
	if repeats < 1 {
		repeats = 1
	}
	if repeats > 64 {
		repeats = 64
	}
	decay := clampf(params.Float("decay", 0), 0, 1)
	mode := params.String("stutter_mode", "normal")

	segment := audio.Slice(start, end)
	n := segment.Frames()
	if n == 0 {
		return audio.Clone(), nil
	}
	segment = microFade(segment, minInt(64, n/4))

	var parts []Buffer
	for i := 0; i < repeats; i++ {
		var part Buffer
		switch mode {
		case "halving":
			length := maxInt(64, n>>uint(i))
			part = segment.Slice(0, minInt(length, n))
		case "reverse_alt":
			if i%2 == 0 {
				part = segment.Clone()
			} else {
				part = reverseFrames(segment)
			}
		default:
			part = segment.Clone()
		}
		if decay > 0 {
			vol := pow1MinusDecay(decay, i)
			for idx := range part.Samples {
				part.Samples[idx] *= float32(vol)
			}
		}
		part = microFade(part, minInt(32, part.Frames()/4))
		parts = append(parts, part)
	}

	stuttered := Concat(parts...)
	before := audio.Slice(0, start)
	after := audio.Slice(end, audio.Frames())
	out := Concat(before, stuttered, after)
	return out.ClampInPlace(), nil
}

func reverseFrames(b Buffer) Buffer {
	out := b.Clone()
	ch := out.Channels
	n := out.Frames()
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		for c := 0; c < ch; c++ {
			out.Samples[i*ch+c], out.Samples[j*ch+c] = out.Samples[j*ch+c], out.Samples[i*ch+c]
		}
	}
	return out
}

func pow1MinusDecay(decay float64, i int) float64 {
	v := 1.0
	base := 1.0 - decay
	for k := 0; k < i; k++ {
		v *= base
	}
	return v
}
