package dsp

import "math"

func init() { Register(delayEffect{}) }

// DelayTailThresholdDB and DelayTailSafetyMarginSeconds resolve SPEC_FULL.md
// §9 Open Question 1: kept at the original's -60dBFS + 0.25s margin.
const (
	DelayTailThresholdDB          = -60.0
	DelayTailSafetyMarginSeconds  = 0.25
	delayMaxEchoes                = 30
)

// delayEffect is a feedback echo whose tail mixes OVER the audio that
// follows the selection instead of extending into silence, only growing
// the buffer if the tail outlasts the remaining audio. Tail-extending.
// Grounded on original_source/core/effects/delay.py.
type delayEffect struct{}

func (delayEffect) ID() EffectID        { return Delay }
func (delayEffect) TailExtending() bool { return true }
func (delayEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "delay_ms", Display: "Delay (ms)", Min: 10, Max: 2000, Default: 300, Step: 10, Automatable: true},
		{Key: "feedback", Display: "Feedback", Min: 0, Max: 0.95, Default: 0.4, Step: 0.05, Automatable: true},
		{Key: "mix", Display: "Mix", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
	}
}

func (e delayEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	delayMs := params.Float("delay_ms", 200)
	feedback := clampf(params.Float("feedback", 0.6), 0, 0.95)
	mix := clampf(params.Float("mix", 0.5), 0, 1)

	ch := audio.Channels
	segment := audio.Slice(start, end)
	segLen := segment.Frames()
	if segLen == 0 {
		return audio.Clone(), nil
	}

	delaySamples := maxInt(1, int(delayMs*float64(sr)/1000.0))
	fb := feedback
	if fb < 0.01 {
		fb = 0.01
	}
	nEchoes := int(math.Log(0.01)/math.Log(fb)) + 1
	if nEchoes > delayMaxEchoes {
		nEchoes = delayMaxEchoes
	}

	tailSamples := nEchoes * delaySamples
	echoLen := segLen + tailSamples
	echoBuf := NewBuffer(echoLen, ch, sr)
	copy(echoBuf.Samples[:segLen*ch], segment.Samples)

	for i := 1; i <= nEchoes; i++ {
		offset := i * delaySamples
		gain := float32(math.Pow(feedback, float64(i)))
		if gain < 0.01 {
			break
		}
		echoEnd := minInt(offset+segLen, echoLen)
		srcLen := echoEnd - offset
		if srcLen <= 0 {
			break
		}
		for f := 0; f < srcLen; f++ {
			for c := 0; c < ch; c++ {
				echoBuf.Samples[(offset+f)*ch+c] += segment.Samples[f*ch+c] * gain
			}
		}
	}

	wet := NewBuffer(echoLen, ch, sr)
	for i := 0; i < echoLen*ch; i++ {
		var dry float32
		if i < segLen*ch {
			dry = segment.Samples[i]
		}
		wet.Samples[i] = dry*float32(1-mix) + echoBuf.Samples[i]*float32(mix)
	}

	threshold := float32(dbToLinear(DelayTailThresholdDB))
	lastLoud := -1
	for f := echoLen - 1; f >= 0; f-- {
		loud := false
		for c := 0; c < ch; c++ {
			if absf32(wet.Samples[f*ch+c]) > threshold {
				loud = true
				break
			}
		}
		if loud {
			lastLoud = f
			break
		}
	}
	trimEnd := segLen
	if lastLoud >= 0 {
		safetyMarginSamples := int(DelayTailSafetyMarginSeconds * float64(sr))
		trimEnd = minInt(lastLoud+safetyMarginSamples, echoLen)
	}
	wet = wet.Slice(0, trimEnd)

	selectionPart := wet.Slice(0, minInt(segLen, wet.Frames()))
	var tailPart Buffer
	if wet.Frames() > segLen {
		tailPart = wet.Slice(segLen, wet.Frames())
	}

	before := audio.Slice(0, start)
	after := audio.Slice(end, audio.Frames())

	if tailPart.Frames() == 0 {
		out := Concat(before, selectionPart, after)
		return out.ClampInPlace(), nil
	}

	tailLen := tailPart.Frames()
	afterLen := after.Frames()

	if tailLen <= afterLen {
		mixedAfter := after.Clone()
		for f := 0; f < tailLen; f++ {
			for c := 0; c < ch; c++ {
				mixedAfter.Samples[f*ch+c] += tailPart.Samples[f*ch+c]
			}
		}
		out := Concat(before, selectionPart, mixedAfter)
		return out.ClampInPlace(), nil
	}

	var mixedAfter Buffer
	if afterLen > 0 {
		overlap := tailPart.Slice(0, afterLen)
		mixedAfter = after.Clone()
		for f := 0; f < afterLen; f++ {
			for c := 0; c < ch; c++ {
				mixedAfter.Samples[f*ch+c] += overlap.Samples[f*ch+c]
			}
		}
	}
	extension := tailPart.Slice(afterLen, tailPart.Frames())
	out := Concat(before, selectionPart, mixedAfter, extension)
	return out.ClampInPlace(), nil
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
