package dsp

func init() { Register(datamoshEffect{}) }

// datamoshEffect treats the selection as raw blocks and corrupts them:
// swap (block-pair exchange), repeat (stamp one block elsewhere), zero
// (silence blocks), noise (inject uniform noise). Grounded on
// original_source/core/effects/datamosh.py.
type datamoshEffect struct{}

func (datamoshEffect) ID() EffectID        { return Datamosh }
func (datamoshEffect) TailExtending() bool { return false }
func (datamoshEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "chaos", Display: "Chaos", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
		{Key: "block_size", Display: "Block Size", Min: 32, Max: 8192, Default: 512, Step: 32, Automatable: true},
	}
}

func (e datamoshEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	intensity := clampf(params.Float("chaos", 0.5), 0, 1)
	blockSize := params.Int("block_size", 512)
	if blockSize < 1 {
		blockSize = 1
	}
	mode := params.String("mode", "swap")

	out := audio.Clone()
	ch := out.Channels
	segment := out.Slice(start, end)
	segLen := segment.Frames()
	if segLen == 0 {
		return out, nil
	}

	nBlocks := maxInt(1, segLen/blockSize)
	nAffected := maxInt(1, int(float64(nBlocks)*intensity))
	rng := RNG()

	switch mode {
	case "repeat":
		srcIdx := rng.IntN(nBlocks)
		srcS := srcIdx * blockSize
		srcE := minInt(srcS+blockSize, segLen)
		srcBlock := make([]float32, (srcE-srcS)*ch)
		copy(srcBlock, segment.Samples[srcS*ch:srcE*ch])

		for i := 0; i < nAffected; i++ {
			dstIdx := rng.IntN(nBlocks)
			dstS := dstIdx * blockSize
			dstE := minInt(dstS+len(srcBlock)/ch, segLen)
			blockLen := (dstE - dstS) * ch
			copy(segment.Samples[dstS*ch:dstS*ch+blockLen], srcBlock[:blockLen])
		}

	case "zero":
		for i := 0; i < nAffected; i++ {
			idx := rng.IntN(nBlocks)
			s := idx * blockSize
			en := minInt(s+blockSize, segLen)
			for j := s * ch; j < en*ch; j++ {
				segment.Samples[j] = 0
			}
		}

	case "noise":
		for i := 0; i < nAffected; i++ {
			idx := rng.IntN(nBlocks)
			s := idx * blockSize
			en := minInt(s+blockSize, segLen)
			for j := s * ch; j < en*ch; j++ {
				segment.Samples[j] = float32(rng.Float64()-0.5)
			}
		}

	default: // swap
		for i := 0; i < nAffected; i++ {
			bi := rng.IntN(nBlocks)
			bj := rng.IntN(nBlocks)
			s1, e1 := bi*blockSize, minInt((bi+1)*blockSize, segLen)
			s2, e2 := bj*blockSize, minInt((bj+1)*blockSize, segLen)
			blockLen := minInt(e1-s1, e2-s2)
			if blockLen <= 0 {
				continue
			}
			tmp := make([]float32, blockLen*ch)
			copy(tmp, segment.Samples[s1*ch:s1*ch+blockLen*ch])
			copy(segment.Samples[s1*ch:s1*ch+blockLen*ch], segment.Samples[s2*ch:s2*ch+blockLen*ch])
			copy(segment.Samples[s2*ch:s2*ch+blockLen*ch], tmp)
		}
	}

	copy(out.Samples[start*ch:end*ch], segment.Samples)
	return out.ClampInPlace(), nil
}
