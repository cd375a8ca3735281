package timeline

import (
	"fmt"
	"math"
)

// goldenAngle is the hue-rotation step (degrees) used to auto-assign
// visually distinct clip colors, grounded on
// original_source/core/timeline.py's _generate_distinct_color.
const goldenAngle = 137.508

// generateDistinctColor returns a "#rrggbb" hex color for the given clip
// index, rotating hue by the golden angle and cycling saturation/lightness
// so consecutive clips stay visually distinct.
func generateDistinctColor(index int) string {
	hue := math.Mod(float64(index)*goldenAngle, 360) / 360.0
	sat := 0.65 + float64(index%3)*0.1
	lit := 0.50 + float64(index%2)*0.08
	r, g, b := hlsToRGB(hue, lit, sat)
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}

// hlsToRGB mirrors Python's colorsys.hls_to_rgb.
func hlsToRGB(h, l, s float64) (float64, float64, float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueToRGB(m1, m2, h+1.0/3.0), hueToRGB(m1, m2, h), hueToRGB(m1, m2, h-1.0/3.0)
}

func hueToRGB(m1, m2, hue float64) float64 {
	hue = math.Mod(hue, 1.0)
	if hue < 0 {
		hue += 1.0
	}
	switch {
	case hue < 1.0/6.0:
		return m1 + (m2-m1)*hue*6.0
	case hue < 0.5:
		return m2
	case hue < 2.0/3.0:
		return m1 + (m2-m1)*(2.0/3.0-hue)*6.0
	default:
		return m1
	}
}
