// Package envelope implements the Bézier fade/automation curve engine:
// control points with per-segment bend, evaluated into sample-accurate
// gain curves and applied as fade-in/fade-out multipliers.
//
// Grounded on original_source/core/effects/utils.py's envelope section
// (_bezier_y, eval_envelope, make_envelope_curve, apply_envelope_fade).
package envelope

import "glitchmaker/dsp"

// Point is one envelope control point: X in [0, 1] normalised position,
// Y the gain value at that position.
type Point struct {
	X, Y float64
}

// bezierY evaluates a quadratic Bézier at parameter t, with the control
// point's Y nudged by bend away from the y0/y1 midpoint. bend == 0 behaves
// as plain linear interpolation.
func bezierY(y0, y1, bend, t float64) float64 {
	if abs(bend) < 0.005 {
		return y0 + t*(y1-y0)
	}
	cy := (y0+y1)/2.0 + bend
	u := 1.0 - t
	return u*u*y0 + 2.0*u*t*cy + t*t*y1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Eval evaluates the envelope defined by sorted points and per-segment
// bends at normalised position x in [0, 1].
func Eval(pts []Point, bends []float64, x float64) float64 {
	if len(pts) == 0 {
		return 0
	}
	if len(pts) == 1 {
		return pts[0].Y
	}
	if x <= pts[0].X {
		return pts[0].Y
	}
	if x >= pts[len(pts)-1].X {
		return pts[len(pts)-1].Y
	}
	for i := 0; i < len(pts)-1; i++ {
		x0, y0 := pts[i].X, pts[i].Y
		x1, y1 := pts[i+1].X, pts[i+1].Y
		if x0 <= x && x <= x1 {
			dx := x1 - x0
			if dx < 1e-9 {
				return y0
			}
			t := (x - x0) / dx
			var b float64
			if i < len(bends) {
				b = bends[i]
			}
			return bezierY(y0, y1, b, t)
		}
	}
	return pts[len(pts)-1].Y
}

// sortedCopy returns pts sorted ascending by X, leaving the input untouched.
func sortedCopy(pts []Point) []Point {
	out := make([]Point, len(pts))
	copy(out, pts)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].X < out[j-1].X; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Curve builds an n-sample gain envelope from control points and
// per-segment bends, clamped to [0, 1].
func Curve(n int, points []Point, bends []float64) []float64 {
	pts := sortedCopy(points)
	if len(bends) == 0 && len(pts) > 1 {
		bends = make([]float64, len(pts)-1)
	}
	curve := make([]float64, n)
	denom := float64(maxInt(1, n-1))
	for i := 0; i < n; i++ {
		x := float64(i) / denom
		v := Eval(pts, bends, x)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		curve[i] = v
	}
	return curve
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FadeType selects which end of the buffer the envelope curve applies to.
type FadeType int

const (
	FadeIn FadeType = iota
	FadeOut
)

// ApplyFade multiplies the first/last durationSamples frames of audio by an
// envelope curve built from points/bends, returning a fresh buffer.
func ApplyFade(audio dsp.Buffer, durationSamples int, points []Point, bends []float64, fadeType FadeType) dsp.Buffer {
	out := audio.Clone()
	total := out.Frames()
	n := minInt(durationSamples, total)
	if n <= 1 {
		return out
	}
	curve := Curve(n, points, bends)
	ch := out.Channels
	if fadeType == FadeIn {
		for i := 0; i < n; i++ {
			g := float32(curve[i])
			for c := 0; c < ch; c++ {
				out.Samples[i*ch+c] *= g
			}
		}
	} else {
		start := total - n
		for i := 0; i < n; i++ {
			g := float32(curve[i])
			idx := start + i
			for c := 0; c < ch; c++ {
				out.Samples[idx*ch+c] *= g
			}
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// InterpolateCurve is the piecewise-linear simplification of Eval used by
// the automation engine for parameter ramping — no bend, straight segments
// between control points. Grounded on
// original_source/core/automation.py's interpolate_curve.
func InterpolateCurve(points []Point, x float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if len(points) == 1 {
		return points[0].Y
	}
	if x <= points[0].X {
		return points[0].Y
	}
	if x >= points[len(points)-1].X {
		return points[len(points)-1].Y
	}
	for i := 0; i < len(points)-1; i++ {
		x0, y0 := points[i].X, points[i].Y
		x1, y1 := points[i+1].X, points[i+1].Y
		if x0 <= x && x <= x1 {
			if x1 == x0 {
				return y0
			}
			t := (x - x0) / (x1 - x0)
			return y0 + t*(y1-y0)
		}
	}
	return points[len(points)-1].Y
}
