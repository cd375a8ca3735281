package dsp

import "math"

func init() { Register(autotuneEffect{}) }

// autotuneEffect detects pitch per overlapping window via direct
// autocorrelation, snaps it to the nearest note of the given key/scale, and
// pitch-shifts that window toward the target by speed. Grounded on
// original_source/core/effects/autotune.py.
type autotuneEffect struct{}

func (autotuneEffect) ID() EffectID        { return Autotune }
func (autotuneEffect) TailExtending() bool { return false }
func (autotuneEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "speed", Display: "Speed", Min: 0, Max: 1, Default: 0.8, Step: 0.01, Automatable: true},
		{Key: "mix", Display: "Mix", Min: 0, Max: 1, Default: 1.0, Step: 0.01, Automatable: true},
	}
}

var autotuneNoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var autotuneScales = map[string][]int{
	"chromatic":   {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"major":       {0, 2, 4, 5, 7, 9, 11},
	"minor":       {0, 2, 3, 5, 7, 8, 10},
	"pentatonic":  {0, 2, 4, 7, 9},
	"blues":       {0, 3, 5, 6, 7, 10},
	"dorian":      {0, 2, 3, 5, 7, 9, 10},
	"mixolydian":  {0, 2, 4, 5, 7, 9, 10},
}

func freqToMidi(f float64) float64 {
	if f <= 0 {
		return 0
	}
	return 69 + 12*math.Log2(f/440.0)
}

func midiToFreq(m float64) float64 {
	return 440.0 * math.Pow(2, (m-69)/12.0)
}

func snapToScale(midiNote float64, keyOffset int, scale []int) float64 {
	noteClass := int(math.Round(midiNote)) % 12
	if noteClass < 0 {
		noteClass += 12
	}
	relative := (noteClass - keyOffset) % 12
	if relative < 0 {
		relative += 12
	}
	best := scale[0]
	bestDist := math.Min(math.Abs(float64(relative-best)), 12-math.Abs(float64(relative-best)))
	for _, s := range scale[1:] {
		d := math.Min(math.Abs(float64(relative-s)), 12-math.Abs(float64(relative-s)))
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	targetClass := (best + keyOffset) % 12
	octave := int(math.Round(midiNote)) / 12
	target := float64(octave*12 + targetClass)
	if math.Abs(target-midiNote) > math.Abs(target+12-midiNote) {
		target += 12
	} else if math.Abs(target-midiNote) > math.Abs(target-12-midiNote) {
		target -= 12
	}
	return target
}

// detectPitchAutocorr estimates fundamental frequency of frame via direct
// (time-domain) autocorrelation, searching lags for [fmin, fmax] Hz.
func detectPitchAutocorr(frame []float64, sr int, fmin, fmax float64) float64 {
	n := len(frame)
	if n < 64 {
		return 0
	}
	var mean float64
	for _, v := range frame {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	var maxAbs float64
	for i, v := range frame {
		c := v - mean
		centered[i] = c
		if a := math.Abs(c); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs < 1e-5 {
		return 0
	}

	minLag := maxInt(2, int(float64(sr)/fmax))
	maxLag := minInt(n-1, int(float64(sr)/fmin))
	if minLag >= maxLag {
		return 0
	}

	acf0 := 0.0
	for _, v := range centered {
		acf0 += v * v
	}
	if acf0 < 1e-12 {
		acf0 = 1e-12
	}

	acf := make([]float64, maxLag-minLag)
	for lag := minLag; lag < maxLag; lag++ {
		var sum float64
		for i := 0; i < n-lag; i++ {
			sum += centered[i] * centered[i+lag]
		}
		acf[lag-minLag] = sum / acf0
	}

	peakIdx := 0
	peakVal := acf[0]
	for i, v := range acf {
		if v > peakVal {
			peakVal = v
			peakIdx = i
		}
	}
	if peakVal < 0.3 {
		return 0
	}

	lag := float64(peakIdx + minLag)
	if peakIdx > 0 && peakIdx < len(acf)-1 {
		a, b, c := acf[peakIdx-1], acf[peakIdx], acf[peakIdx+1]
		denom := 2 * (2*b - a - c)
		if math.Abs(denom) > 1e-10 {
			offset := (a - c) / denom
			lag = float64(peakIdx+minLag) + offset
		}
	}
	if lag == 0 {
		return 0
	}
	return float64(sr) / lag
}

func (e autotuneEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	speed := clampf(params.Float("speed", 0.8), 0, 1)
	key := params.String("key", "C")
	scaleName := params.String("scale", "chromatic")
	mix := clampf(params.Float("mix", 1.0), 0, 1)

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n < 512 {
		return out, nil
	}
	seg := out.Slice(start, end)

	keyOffset := 0
	for i, name := range autotuneNoteNames {
		if name == key {
			keyOffset = i
			break
		}
	}
	scale, ok := autotuneScales[scaleName]
	if !ok {
		scale = autotuneScales["chromatic"]
	}

	mono := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(seg.Samples[i*ch+c])
		}
		mono[i] = sum / float64(ch)
	}

	winSize := 2048
	if winSize > n {
		winSize = n
	}
	hop := maxInt(1, winSize/4)
	window := hanning(winSize)

	output := make([]float64, n)
	weight := make([]float64, n)

	for i := 0; i+winSize <= n; i += hop {
		frame := make([]float64, winSize)
		for k := 0; k < winSize; k++ {
			frame[k] = mono[i+k] * window[k]
		}
		freq := detectPitchAutocorr(frame, sr, 80, 800)
		if freq < 60 || freq > 1000 {
			for k := 0; k < winSize; k++ {
				output[i+k] += frame[k]
				weight[i+k] += window[k]
			}
			continue
		}

		midi := freqToMidi(freq)
		targetMidi := snapToScale(midi, keyOffset, scale)
		shiftSemitones := (targetMidi - midi) * speed

		if math.Abs(shiftSemitones) < 0.05 {
			for k := 0; k < winSize; k++ {
				output[i+k] += frame[k]
				weight[i+k] += window[k]
			}
			continue
		}

		factor := math.Exp2(shiftSemitones / 12.0)
		newLen := maxInt(2, int(float64(winSize)/factor))
		shifted := resampleFloat64(frame, newLen)
		shifted = resampleFloat64(shifted, winSize)
		for k := 0; k < winSize; k++ {
			output[i+k] += shifted[k] * window[k]
			weight[i+k] += window[k]
		}
	}

	for i := range weight {
		if weight[i] < 1e-8 {
			weight[i] = 1e-8
		}
		output[i] /= weight[i]
	}

	for i := 0; i < n; i++ {
		m := mono[i]
		var ratio float64 = 1.0
		if math.Abs(m) > 1e-6 {
			ratio = output[i] / (m + 1e-8)
			ratio = clampf(ratio, -3.0, 3.0)
		}
		gain := 1.0 - mix + mix*ratio
		for c := 0; c < ch; c++ {
			idx := i*ch + c
			seg.Samples[idx] = float32(float64(seg.Samples[idx]) * gain)
		}
	}

	copy(out.Samples[start*ch:end*ch], seg.Samples)
	return out.ClampInPlace(), nil
}

// resampleFloat64 linearly resamples a mono float64 slice to newLen samples.
func resampleFloat64(src []float64, newLen int) []float64 {
	n := len(src)
	out := make([]float64, newLen)
	if n == 0 || newLen == 0 {
		return out
	}
	if n == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	scale := float64(n-1) / float64(maxInt(1, newLen-1))
	for i := 0; i < newLen; i++ {
		pos := float64(i) * scale
		i0 := int(math.Floor(pos))
		if i0 > n-2 {
			i0 = n - 2
		}
		if i0 < 0 {
			i0 = 0
		}
		frac := pos - float64(i0)
		out[i] = src[i0]*(1-frac) + src[i0+1]*frac
	}
	return out
}
