package dsp

func init() { Register(tapeStopEffect{}) }

// tapeStopEffect simulates a cassette player grinding to a halt: the tail
// portion of the selection is sliced into 64 chunks, each resampled at a
// decreasing speed and amplitude, then truncated/padded back to the
// original selection length. Grounded on
// original_source/core/effects/tape_stop.py.
type tapeStopEffect struct{}

func (tapeStopEffect) ID() EffectID        { return TapeStop }
func (tapeStopEffect) TailExtending() bool { return false }
func (tapeStopEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "duration_ms", Display: "Duration (ms)", Min: 100, Max: 5000, Default: 1500, Step: 50, Automatable: false},
	}
}

const tapeStopChunks = 64

func (e tapeStopEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	durationMs := params.Float("duration_ms", 1500.0)
	durationPct := clampf(params.Float("duration_pct", durationMs/1000.0*float64(sr)/float64(maxInt(1, end-start))), 0.05, 1.0)

	out := audio.Clone()
	segment := out.Slice(start, end)
	segLen := segment.Frames()
	if segLen == 0 {
		return out, nil
	}

	effectLen := maxInt(256, int(float64(segLen)*durationPct))
	cleanLen := segLen - effectLen
	if cleanLen < 0 {
		cleanLen = 0
		effectLen = segLen
	}

	cleanPart := segment.Slice(0, cleanLen)
	effectPart := segment.Slice(cleanLen, segLen)

	chunkSize := maxInt(1, effectPart.Frames()/tapeStopChunks)
	var chunks []Buffer
	for i := 0; i < tapeStopChunks; i++ {
		s := i * chunkSize
		if s >= effectPart.Frames() {
			break
		}
		en := minInt(s+chunkSize, effectPart.Frames())
		chunk := effectPart.Slice(s, en)

		speed := maxFloat(0.05, 1.0-(float64(i)/float64(tapeStopChunks))*0.95)
		newLen := maxInt(4, int(float64(chunk.Frames())/speed))
		stretched := resampleBuffer(chunk, newLen)

		volume := maxFloat(0.0, 1.0-(float64(i)/float64(tapeStopChunks))*0.8)
		for idx := range stretched.Samples {
			stretched.Samples[idx] *= float32(volume)
		}
		chunks = append(chunks, stretched)
	}

	var effectOut Buffer
	if len(chunks) > 0 {
		effectOut = Concat(chunks...)
	} else {
		effectOut = effectPart
	}

	combined := Concat(cleanPart, effectOut)
	if combined.Frames() > segLen {
		combined = combined.Slice(0, segLen)
	} else if combined.Frames() < segLen {
		pad := NewBuffer(segLen-combined.Frames(), combined.Channels, combined.SampleRate)
		combined = Concat(combined, pad)
	}

	copy(out.Samples[start*out.Channels:end*out.Channels], combined.Samples)
	return out.ClampInPlace(), nil
}
