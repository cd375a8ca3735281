package timeline

import "glitchmaker/dsp"

// Resample linearly interpolates buf to newLen frames, used when Render
// finds a clip whose sample rate doesn't match the timeline's. Kept
// separate from dsp's internal effect-local resampler (used by pitch/time
// effects) since this one operates on a whole clip, not an in-flight
// effect selection — see SPEC_FULL.md §9 Open Question 2.
func Resample(buf dsp.Buffer, newLen int) dsp.Buffer {
	out := dsp.NewBuffer(newLen, buf.Channels, buf.SampleRate)
	n := buf.Frames()
	if n == 0 || newLen == 0 {
		return out
	}
	ch := buf.Channels
	if n == 1 {
		for i := 0; i < newLen; i++ {
			for c := 0; c < ch; c++ {
				out.Samples[i*ch+c] = buf.Samples[c]
			}
		}
		return out
	}
	ratio := float64(n-1) / float64(maxInt(newLen-1, 1))
	for i := 0; i < newLen; i++ {
		pos := float64(i) * ratio
		lo := int(pos)
		if lo >= n-1 {
			for c := 0; c < ch; c++ {
				out.Samples[i*ch+c] = buf.Samples[(n-1)*ch+c]
			}
			continue
		}
		frac := float32(pos - float64(lo))
		for c := 0; c < ch; c++ {
			a := buf.Samples[lo*ch+c]
			b := buf.Samples[(lo+1)*ch+c]
			out.Samples[i*ch+c] = a*(1-frac) + b*frac
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
