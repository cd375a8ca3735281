// Package automation re-invokes an effect chunk-by-chunk across a
// selection, interpolating one or more of its parameters along a
// normalised 0..1 curve so that, e.g., a delay's feedback can ramp up
// across a verse instead of staying fixed.
//
// Grounded on original_source/core/automation.py (apply_automation_multi,
// interpolate_curve, AUTOMATABLE_PARAMS).
package automation

import (
	"fmt"

	"github.com/charmbracelet/log"

	"glitchmaker/dsp"
	"glitchmaker/envelope"
)

// ChunkSize matches the original's default automation granularity.
const ChunkSize = 2048

// Mode selects whether a parameter is ramped along a curve or held at a
// fixed value for the whole automated render.
type Mode int

const (
	ModeAutomated Mode = iota
	ModeConstant
)

// Param describes one automated or constant parameter for a single
// ApplyMulti call.
type Param struct {
	Key        string
	Mode       Mode
	DefaultVal float64
	TargetVal  float64
	Curve      []envelope.Point // used when Mode == ModeAutomated
	Value      float64          // used when Mode == ModeConstant
}

// ApplyMulti walks audio[start:end) in ChunkSize-frame chunks, computing
// each automated parameter's value at the chunk's normalised position and
// invoking effect.Process on that chunk alone. A chunk whose processed
// output doesn't match its input length, or whose Process call errors, is
// logged and left untouched — automation never takes down the render.
func ApplyMulti(audio dsp.Buffer, start, end int, effect dsp.Effect, base dsp.Params, params []Param, sr int) dsp.Buffer {
	out := audio.Clone()
	regionLen := end - start
	if regionLen < 1 {
		return out
	}

	specs := effect.Params()
	specByKey := make(map[string]dsp.ParamSpec, len(specs))
	for _, s := range specs {
		specByKey[s.Key] = s
	}

	pos := start
	for pos < end {
		chunkEnd := minInt(pos+ChunkSize, end)
		normX := float64(pos-start) / float64(regionLen)

		chunkParams := make(dsp.Params, len(base)+len(params))
		for k, v := range base {
			chunkParams[k] = v
		}
		for _, p := range params {
			var value float64
			if p.Mode == ModeConstant {
				value = p.Value
			} else {
				curve := p.Curve
				if len(curve) == 0 {
					curve = []envelope.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
				}
				ny := envelope.InterpolateCurve(curve, normX)
				value = p.DefaultVal + ny*(p.TargetVal-p.DefaultVal)
			}
			if spec, ok := specByKey[p.Key]; ok {
				value = spec.Clamp(value)
			}
			chunkParams[p.Key] = value
		}

		segLen := chunkEnd - pos
		segment := out.Slice(pos, chunkEnd)
		processed, err := runChunk(effect, segment, sr, chunkParams)
		if err != nil {
			log.Debug("automation chunk failed", "pos", pos, "effect", effect.ID(), "err", err)
		} else if processed.Frames() == segLen {
			copy(out.Samples[pos*out.Channels:chunkEnd*out.Channels], processed.Samples)
		} else {
			log.Debug("automation chunk length mismatch, dropping", "pos", pos, "effect", effect.ID(), "want", segLen, "got", processed.Frames())
		}

		pos = chunkEnd
	}

	return out
}

// runChunk recovers from a panicking effect so a single unstable chunk
// can never abort the whole automated render.
func runChunk(effect dsp.Effect, segment dsp.Buffer, sr int, params dsp.Params) (out dsp.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return effect.Process(segment, 0, segment.Frames(), sr, params)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
