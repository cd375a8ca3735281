package dsp

func init() { Register(reverseEffect{}) }

// reverseEffect reverses the selected region in place, with a micro-fade at
// the seams. Grounded on original_source/core/effects/reverse.py.
type reverseEffect struct{}

func (reverseEffect) ID() EffectID        { return Reverse }
func (reverseEffect) TailExtending() bool { return false }
func (reverseEffect) Params() []ParamSpec { return nil }

func (e reverseEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	out := audio.Clone()
	ch := out.Channels
	segFrames := end - start
	if segFrames <= 0 {
		return out, nil
	}
	seg := out.Slice(start, end)
	for i, j := 0, segFrames-1; i < j; i, j = i+1, j-1 {
		for c := 0; c < ch; c++ {
			seg.Samples[i*ch+c], seg.Samples[j*ch+c] = seg.Samples[j*ch+c], seg.Samples[i*ch+c]
		}
	}
	seg = microFade(seg, minInt(64, segFrames/4))
	copy(out.Samples[start*ch:end*ch], seg.Samples)
	return out.ClampInPlace(), nil
}
