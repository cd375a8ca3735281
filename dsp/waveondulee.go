package dsp

import "math"

func init() { Register(waveOnduleeEffect{}) }

// waveOnduleeEffect is a sinusoidal pitch+volume LFO, with an independent
// phase-offset on the right channel for a "wobbling tape" stereo spread.
// Grounded on original_source/core/effects/wave_ondulee.py.
type waveOnduleeEffect struct{}

func (waveOnduleeEffect) ID() EffectID        { return WaveOndulee }
func (waveOnduleeEffect) TailExtending() bool { return false }
func (waveOnduleeEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "speed", Display: "Speed (Hz)", Min: 0.1, Max: 15, Default: 3, Step: 0.1, Automatable: true},
		{Key: "pitch_depth", Display: "Pitch Depth", Min: 0, Max: 1, Default: 0.4, Step: 0.01, Automatable: true},
		{Key: "vol_depth", Display: "Volume Depth", Min: 0, Max: 1, Default: 0.3, Step: 0.01, Automatable: true},
	}
}

func (e waveOnduleeEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	speed := params.Float("speed", 3.0)
	pitchDepth := clampf(params.Float("pitch_depth", 0.4), 0, 1)
	volDepth := clampf(params.Float("vol_depth", 0.3), 0, 1)
	stereoOffset := params.Bool("stereo_offset", true)

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n < 2 {
		return out, nil
	}
	seg := out.Slice(start, end)

	for i := 0; i < n; i++ {
		t := float64(i) / float64(sr)
		wave := math.Sin(2 * math.Pi * speed * t)
		volEnv := 1.0 - volDepth*0.5*(1.0+wave)
		for c := 0; c < ch; c++ {
			v := volEnv
			if ch >= 2 && stereoOffset && c == 1 {
				waveR := math.Sin(2*math.Pi*speed*t + math.Pi*0.4)
				v = 1.0 - volDepth*0.5*(1.0+waveR)
			}
			idx := i*ch + c
			seg.Samples[idx] = float32(float64(seg.Samples[idx]) * v)
		}
	}

	if pitchDepth > 0.01 {
		maxShift := pitchDepth * 0.15
		readIdx := make([]float64, n)
		cum := 0.0
		for i := 0; i < n; i++ {
			t := float64(i) / float64(sr)
			speedMod := 1.0 + maxShift*math.Sin(2*math.Pi*speed*0.5*t)
			cum += speedMod
			readIdx[i] = cum
		}
		last := readIdx[n-1]
		if last != 0 {
			for i := range readIdx {
				readIdx[i] = readIdx[i] / last * float64(n-1)
			}
		}
		warped := NewBuffer(n, ch, sr)
		for i := 0; i < n; i++ {
			i0 := int(math.Floor(readIdx[i]))
			i1 := minInt(i0+1, n-1)
			if i0 < 0 {
				i0 = 0
			}
			if i0 > n-1 {
				i0 = n - 1
			}
			frac := readIdx[i] - float64(i0)
			for c := 0; c < ch; c++ {
				a := float64(seg.Samples[i0*ch+c])
				b := float64(seg.Samples[i1*ch+c])
				warped.Samples[i*ch+c] = float32(a*(1.0-frac) + b*frac)
			}
		}
		seg = warped
	}

	seg = microFade(seg, 64)
	copy(out.Samples[start*ch:end*ch], seg.Samples)
	return out.ClampInPlace(), nil
}
