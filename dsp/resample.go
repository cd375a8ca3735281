package dsp

// resampleChannel resamples a single channel's samples to newLen using
// linear interpolation. Several effects (pitch_shift, time_stretch,
// tape_stop) use this internally to change a segment's apparent
// speed/pitch, mirroring the original's use of scipy.signal.resample but
// with an explicit, documented, deterministic technique (see SPEC_FULL.md
// §9 Open Question 2 and DESIGN.md's timeline/resample.go entry for the
// equivalent whole-clip decision).
func resampleChannel(src []float32, newLen int) []float32 {
	out := make([]float32, newLen)
	n := len(src)
	if n == 0 || newLen == 0 {
		return out
	}
	if n == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	ratio := float64(n-1) / float64(maxInt(newLen-1, 1))
	for i := 0; i < newLen; i++ {
		pos := float64(i) * ratio
		lo := int(pos)
		if lo >= n-1 {
			out[i] = src[n-1]
			continue
		}
		frac := float32(pos - float64(lo))
		out[i] = src[lo]*(1-frac) + src[lo+1]*frac
	}
	return out
}

// resampleBuffer resamples every channel of buf to newLen frames.
func resampleBuffer(buf Buffer, newLen int) Buffer {
	out := NewBuffer(newLen, buf.Channels, buf.SampleRate)
	for c := 0; c < buf.Channels; c++ {
		out.SetChannel(c, resampleChannel(buf.Channel(c), newLen))
	}
	return out
}
