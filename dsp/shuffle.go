package dsp

func init() { Register(shuffleEffect{}) }

// shuffleEffect slices the selection into num_slices chunks and reorders
// them (random/reverse/interleave), truncating/padding back to the
// original selection length. Grounded on
// original_source/core/effects/shuffle.py.
type shuffleEffect struct{}

func (shuffleEffect) ID() EffectID        { return Shuffle }
func (shuffleEffect) TailExtending() bool { return false }
func (shuffleEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "num_slices", Display: "Slices", Min: 2, Max: 64, Default: 8, Step: 1, Automatable: true},
	}
}

func (e shuffleEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	slices := params.Int("num_slices", 8)
	if slices < 2 {
		slices = 2
	}
	if slices > 64 {
		slices = 64
	}
	mode := params.String("mode", "random")

	out := audio.Clone()
	segment := out.Slice(start, end)
	segLen := segment.Frames()
	if segLen == 0 {
		return out, nil
	}

	sliceLen := maxInt(64, segLen/slices)
	var chunks []Buffer
	for i := 0; i < slices; i++ {
		s := i * sliceLen
		if s >= segLen {
			break
		}
		en := minInt(s+sliceLen, segLen)
		chunk := segment.Slice(s, en)
		chunk = microFade(chunk, minInt(16, chunk.Frames()/4))
		chunks = append(chunks, chunk)
	}
	if len(chunks) == 0 {
		return out, nil
	}

	switch mode {
	case "reverse":
		for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
			chunks[i], chunks[j] = chunks[j], chunks[i]
		}
	case "interleave":
		var odds, evens []Buffer
		for i, c := range chunks {
			if i%2 == 0 {
				odds = append(odds, c)
			} else {
				evens = append(evens, c)
			}
		}
		chunks = append(odds, evens...)
	default: // random
		rng := RNG()
		rng.Shuffle(len(chunks), func(i, j int) { chunks[i], chunks[j] = chunks[j], chunks[i] })
	}

	output := Concat(chunks...)
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
