package dsp

import "math"

func init() { Register(robotEffect{}) }

// robotEffect resynthesizes the selection as overlap-added Hann grains,
// optionally flattening pitch to a fixed carrier and adding harmonic ring
// modulation for a metallic voice. Grounded on
// original_source/core/effects/robot.py.
type robotEffect struct{}

func (robotEffect) ID() EffectID        { return Robot }
func (robotEffect) TailExtending() bool { return false }
func (robotEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "grain_ms", Display: "Grain (ms)", Min: 3, Max: 30, Default: 8, Step: 1, Automatable: true},
		{Key: "robot_amount", Display: "Amount", Min: 0, Max: 1, Default: 0.7, Step: 0.01, Automatable: true},
		{Key: "metallic", Display: "Metallic", Min: 0, Max: 1, Default: 0.4, Step: 0.01, Automatable: true},
		{Key: "monotone", Display: "Monotone", Min: 0, Max: 1, Default: 0, Step: 0.01, Automatable: true},
		{Key: "pitch_hz", Display: "Pitch (Hz)", Min: 40, Max: 600, Default: 150, Step: 1, Automatable: true},
	}
}

func hanning(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func (e robotEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	grainMs := params.Float("grain_ms", 8.0)
	robotAmount := clampf(params.Float("robot_amount", 0.7), 0, 1)
	metallic := clampf(params.Float("metallic", 0.4), 0, 1)
	monotone := clampf(params.Float("monotone", 0.0), 0, 1)
	pitchHz := params.Float("pitch_hz", 150.0)

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n < 64 {
		return out, nil
	}
	dry := out.Slice(start, end)
	seg := dry.Clone()

	grainSize := maxInt(16, int(grainMs/1000.0*float64(sr)))
	if grainSize > n {
		grainSize = n
	}
	hop := grainSize / 2
	if hop < 1 {
		hop = 1
	}
	window := hanning(grainSize)

	output := NewBuffer(n, ch, sr)
	weight := make([]float64, n)
	for i := 0; i+grainSize <= n || i == 0; i += hop {
		if i >= n-grainSize {
			break
		}
		for k := 0; k < grainSize; k++ {
			w := window[k]
			for c := 0; c < ch; c++ {
				output.Samples[(i+k)*ch+c] += float32(float64(dry.Samples[(i+k)*ch+c]) * w)
			}
			weight[i+k] += w
		}
	}
	for i := 0; i < n; i++ {
		w := weight[i]
		if w < 1e-8 {
			w = 1e-8
		}
		for c := 0; c < ch; c++ {
			seg.Samples[i*ch+c] = float32(float64(output.Samples[i*ch+c]) / w)
		}
	}

	if monotone > 0.1 {
		kernelSize := maxInt(1, int(float64(sr)*0.005))
		for c := 0; c < ch; c++ {
			env := make([]float64, n)
			for i := 0; i < n; i++ {
				env[i] = math.Abs(float64(seg.Samples[i*ch+c]))
			}
			if kernelSize > 1 {
				env = movingAverage(env, kernelSize)
			}
			for i := 0; i < n; i++ {
				t := float64(i) / float64(sr)
				carrier := math.Sin(2 * math.Pi * pitchHz * t)
				monoSignal := env[i] * carrier
				v := float64(seg.Samples[i*ch+c])
				seg.Samples[i*ch+c] = float32(v*(1.0-monotone) + monoSignal*monotone)
			}
		}
	}

	if metallic > 0.01 {
		for i := 0; i < n; i++ {
			t := float64(i) / float64(sr)
			ring := 0.5*math.Sin(2*math.Pi*180*t) + 0.3*math.Sin(2*math.Pi*320*t) + 0.2*math.Sin(2*math.Pi*520*t)
			for c := 0; c < ch; c++ {
				v := float64(seg.Samples[i*ch+c])
				seg.Samples[i*ch+c] = float32(v*(1.0-metallic) + v*ring*metallic)
			}
		}
	}

	for i := range seg.Samples {
		seg.Samples[i] = dry.Samples[i]*float32(1.0-robotAmount) + seg.Samples[i]*float32(robotAmount)
	}

	seg = microFade(seg, 128)
	copy(out.Samples[start*ch:end*ch], seg.Samples)
	return out.ClampInPlace(), nil
}

// movingAverage is a centered moving average, mirroring np.convolve(mode='same').
func movingAverage(src []float64, kernel int) []float64 {
	n := len(src)
	out := make([]float64, n)
	half := kernel / 2
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
	return out
}
