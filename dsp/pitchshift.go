package dsp

import "math"

func init() { Register(pitchShiftEffect{}) }

// pitchShiftEffect changes pitch via resample-then-resample-back (duration
// preserved) unless simple=true, in which case the intermediate resample is
// kept and the selection's duration changes: downward shifts lengthen it
// and upward shifts shorten it.
// Grounded on original_source/core/effects/pitch_shift.py
// (pitch_shift / pitch_shift_simple).
type pitchShiftEffect struct{}

func (pitchShiftEffect) ID() EffectID { return PitchShift }

// TailExtending reports the "simple" mode's behavior conservatively. The
// render pipeline does not consult this flag: it takes whatever full
// buffer Process returns, whose length already reflects the change.
func (pitchShiftEffect) TailExtending() bool {
	return true
}
func (pitchShiftEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "semitones", Display: "Semitones", Min: -24, Max: 24, Default: 0, Step: 1, Automatable: true},
	}
}

func pitchFactor(semitones float64) float64 {
	return math.Exp2(semitones / 12.0)
}

func (e pitchShiftEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	semitones := params.Float("semitones", 0.0)
	simple := params.Bool("simple", false)

	segment := audio.Slice(start, end)
	originalLen := segment.Frames()
	if originalLen == 0 {
		return audio.Clone(), nil
	}

	factor := pitchFactor(semitones)
	newLen := maxInt(2, int(float64(originalLen)/factor))
	if newLen < 2 {
		return audio.Clone(), nil
	}

	shifted := resampleBuffer(segment, newLen)

	if !simple {
		shifted = resampleBuffer(shifted, originalLen)
		shifted = microFade(shifted, 64)
		out := audio.Clone()
		copy(out.Samples[start*out.Channels:end*out.Channels], shifted.Samples[:originalLen*out.Channels])
		return out.ClampInPlace(), nil
	}

	shifted = microFade(shifted, 64)
	before := audio.Slice(0, start)
	after := audio.Slice(end, audio.Frames())
	out := Concat(before, shifted, after)
	return out.ClampInPlace(), nil
}
