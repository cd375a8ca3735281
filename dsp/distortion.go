package dsp

import "math"

func init() { Register(distortionEffect{}) }

// distortionEffect is waveshaping distortion with tube/fuzz/digital/scream
// modes plus a one-pole tone filter. Grounded on
// original_source/core/effects/distortion.py.
type distortionEffect struct{}

func (distortionEffect) ID() EffectID        { return Distortion }
func (distortionEffect) TailExtending() bool { return false }
func (distortionEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "drive", Display: "Drive", Min: 0, Max: 100, Default: 50, Step: 1, Automatable: true},
		{Key: "tone", Display: "Tone", Min: 0, Max: 1, Default: 0.5, Step: 0.01, Automatable: true},
	}
}

func (e distortionEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	mode := params.String("mode", "tube")
	drive := params.Float("drive", 5.0)
	tone := params.Float("tone", 0.5)
	if drive > 1 {
		// Registry range is 0-100 (display scale); the original's internal
		// drive multiplier operates on a much smaller range, so values above
		// 20 are divided by 20. Values up to 20 are used as the multiplier
		// unchanged.
		if drive > 20 {
			drive = drive / 20.0
		}
	}

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}

	seg := make([]float64, n*ch)
	for i := 0; i < n*ch; i++ {
		seg[i] = float64(out.Samples[start*ch+i]) * drive
	}

	switch mode {
	case "tube":
		for i := range seg {
			seg[i] = sign(seg[i]) * (1 - math.Exp(-math.Abs(seg[i])))
		}
	case "fuzz":
		for i := range seg {
			seg[i] = math.Tanh(seg[i]*2.0) * sign(seg[i]+0.001)
		}
	case "digital":
		steps := math.Max(2, math.Trunc(16/math.Max(drive, 0.1)))
		for i := range seg {
			v := clampf(seg[i], -1, 1)
			seg[i] = math.Round(v*steps) / steps
		}
	case "scream":
		for i := range seg {
			v := math.Tanh(seg[i] * 3.0)
			seg[i] = sign(v) * math.Pow(math.Abs(v), 0.3)
		}
	}

	if tone < 0.95 {
		alpha := tone * 0.99
		for c := 0; c < ch; c++ {
			prev := seg[c]
			for f := 1; f < n; f++ {
				idx := f*ch + c
				seg[idx] = alpha*prev + (1-alpha)*seg[idx]
				prev = seg[idx]
			}
		}
	}

	for i := 0; i < n*ch; i++ {
		out.Samples[start*ch+i] = float32(clampf(seg[i], -1, 1))
	}
	return out, nil
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
