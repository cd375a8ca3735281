package dsp

import "math"

func init() { Register(saturationEffect{}) }

// saturationEffect unifies hard-clip, soft-clip (tanh), and overdrive
// (asymmetric tanh + tone moving-average) into one effect keyed by mode.
// Grounded on original_source/core/effects/saturation.py.
type saturationEffect struct{}

func (saturationEffect) ID() EffectID        { return Saturation }
func (saturationEffect) TailExtending() bool { return false }
func (saturationEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "drive", Display: "Drive", Min: 0.5, Max: 20, Default: 20, Step: 1, Automatable: true},
		{Key: "tone", Display: "Tone", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: false},
	}
}

func (e saturationEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	mode := params.String("type", "soft")
	drive := clampf(params.Float("drive", 3.0), 0.5, 20.0)
	tone := params.Float("tone", 0.5)

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}

	switch mode {
	case "hard":
		threshold := math.Max(0.05, 1.0/drive)
		for i := start; i < end; i++ {
			for c := 0; c < ch; c++ {
				v := float64(out.Samples[i*ch+c])
				v = clampf(v, -threshold, threshold) / threshold
				out.Samples[i*ch+c] = float32(v)
			}
		}
	case "overdrive":
		seg := make([]float64, n*ch)
		for i := 0; i < n*ch; i++ {
			v := float64(out.Samples[start*ch+i]) * drive
			if v >= 0 {
				seg[i] = math.Tanh(v)
			} else {
				seg[i] = math.Tanh(v*0.8) * 1.2
			}
		}
		if tone < 0.5 {
			kernel := int((1.0-tone)*8) + 1
			for c := 0; c < ch; c++ {
				smoothMovingAverage(seg, ch, c, kernel)
			}
		}
		for i := 0; i < n*ch; i++ {
			out.Samples[start*ch+i] = float32(seg[i])
		}
	default: // "soft"
		for i := start; i < end; i++ {
			for c := 0; c < ch; c++ {
				v := float64(out.Samples[i*ch+c])
				out.Samples[i*ch+c] = float32(math.Tanh(v * drive))
			}
		}
	}
	return out.ClampInPlace(), nil
}

// smoothMovingAverage applies a centered moving average of the given kernel
// size to one channel of an interleaved float64 slice, matching
// np.convolve(..., mode='same').
func smoothMovingAverage(seg []float64, ch, channel, kernel int) {
	n := len(seg) / ch
	if kernel < 2 || n == 0 {
		return
	}
	src := make([]float64, n)
	for i := 0; i < n; i++ {
		src[i] = seg[i*ch+channel]
	}
	half := kernel / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		count := 0
		for k := -half; k < kernel-half; k++ {
			j := i + k
			if j >= 0 && j < n {
				sum += src[j]
				count++
			}
		}
		if count > 0 {
			out[i] = sum / float64(count)
		}
	}
	for i := 0; i < n; i++ {
		seg[i*ch+channel] = out[i]
	}
}
