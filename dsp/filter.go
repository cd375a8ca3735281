package dsp

import "math"

func init() { Register(filterEffect{}) }

// filterEffect is a one-pole lowpass/highpass or two-pole resonant bandpass
// IIR filter. Not present as a standalone file in original_source (see
// DESIGN.md); built from spec.md's param contract using the same
// single-pole/biquad technique style the grounded effects use elsewhere
// (e.g. distortion.go's tone filter).
type filterEffect struct{}

func (filterEffect) ID() EffectID        { return Filter }
func (filterEffect) TailExtending() bool { return false }
func (filterEffect) Params() []ParamSpec {
	return []ParamSpec{
		{Key: "cutoff_hz", Display: "Cutoff (Hz)", Min: 20, Max: 20000, Default: 1000, Step: 10, Automatable: true},
		{Key: "resonance", Display: "Resonance", Min: 0.1, Max: 20, Default: 1.0, Step: 0.1, Automatable: true},
	}
}

func (e filterEffect) Process(audio Buffer, start, end, sr int, params Params) (Buffer, error) {
	filterType := params.String("filter_type", "lowpass")
	cutoff := params.Float("cutoff_hz", 1000)
	resonance := params.Float("resonance", 1.0)
	if resonance <= 0 {
		resonance = 0.1
	}

	out := audio.Clone()
	ch := out.Channels
	n := end - start
	if n <= 0 {
		return out, nil
	}

	omega := 2 * math.Pi * cutoff / float64(sr)
	sn, cs := math.Sin(omega), math.Cos(omega)
	alpha := sn / (2 * resonance)

	for c := 0; c < ch; c++ {
		switch filterType {
		case "bandpass":
			b0 := alpha
			b1 := 0.0
			b2 := -alpha
			a0 := 1 + alpha
			a1 := -2 * cs
			a2 := 1 - alpha
			b0, b1, b2 = b0/a0, b1/a0, b2/a0
			a1, a2 = a1/a0, a2/a0
			var x1, x2, y1, y2 float64
			for i := start; i < end; i++ {
				x0 := float64(out.Samples[i*ch+c])
				y0 := b0*x0 + b1*x1 + b2*x2 - a1*y1 - a2*y2
				out.Samples[i*ch+c] = float32(y0)
				x2, x1 = x1, x0
				y2, y1 = y1, y0
			}
		case "highpass":
			rc := 1.0 / (2 * math.Pi * cutoff)
			dt := 1.0 / float64(sr)
			a := rc / (rc + dt)
			var prevIn, prevOut float64
			for i := start; i < end; i++ {
				x0 := float64(out.Samples[i*ch+c])
				y0 := a * (prevOut + x0 - prevIn)
				out.Samples[i*ch+c] = float32(y0)
				prevIn, prevOut = x0, y0
			}
		default: // lowpass
			rc := 1.0 / (2 * math.Pi * cutoff)
			dt := 1.0 / float64(sr)
			a := dt / (rc + dt)
			var prevOut float64
			for i := start; i < end; i++ {
				x0 := float64(out.Samples[i*ch+c])
				y0 := prevOut + a*(x0-prevOut)
				out.Samples[i*ch+c] = float32(y0)
				prevOut = y0
			}
		}
	}
	_ = n
	return out.ClampInPlace(), nil
}
