// Package timeline manages an ordered sequence of audio clips and renders
// them to a single stereo buffer.
//
// Grounded on original_source/core/timeline.py (Timeline, AudioClip,
// render, reposition_clips, golden-angle auto-coloring) and the clip
// structural operations (split/duplicate/delete/cut_silence/cut_splice/
// fade_in/fade_out) grounded on original_source/gui/main_window.py's
// handlers of the same name.
package timeline

import (
	"github.com/google/uuid"

	"glitchmaker/dsp"
	"glitchmaker/envelope"
)

// FadeParams records the envelope used for a clip's fade-in or fade-out so
// it can be re-edited without stacking on top of a previous fade.
type FadeParams struct {
	DurationSamples int
	Points          []envelope.Point
	Bends           []float64
}

// Clip is a single audio clip placed on the timeline.
type Clip struct {
	ID         string
	Name       string
	Audio      dsp.Buffer
	Position   int // sample offset on the timeline
	Color      string
	FadeIn     *FadeParams
	FadeOut    *FadeParams
	beforeFadeIn  dsp.Buffer // shadow copy, nil until a fade-in is first applied
	beforeFadeOut dsp.Buffer
	hasBeforeFadeIn  bool
	hasBeforeFadeOut bool
}

// NewClip creates a clip with a fresh 8-hex-char id, mirroring the
// original's uuid4().hex[:8].
func NewClip(name string, audio dsp.Buffer, position int, color string) *Clip {
	return &Clip{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Audio:    audio,
		Position: position,
		Color:    color,
	}
}

// DurationSamples returns the clip's length in frames.
func (c *Clip) DurationSamples() int { return c.Audio.Frames() }

// EndPosition returns Position + DurationSamples.
func (c *Clip) EndPosition() int { return c.Position + c.DurationSamples() }

// ApplyFadeIn restores the clip's pre-fade-in audio (preserving any active
// fade-out), applies a new envelope fade-in, and remembers the pre-fade
// state so the next call replaces rather than stacks.
func (c *Clip) ApplyFadeIn(params FadeParams) {
	if c.hasBeforeFadeIn {
		c.Audio = c.beforeFadeIn.Clone()
		if c.FadeOut != nil {
			c.Audio = envelope.ApplyFade(c.Audio, c.FadeOut.DurationSamples, c.FadeOut.Points, c.FadeOut.Bends, envelope.FadeOut)
		}
	}
	if !c.hasBeforeFadeIn {
		c.beforeFadeIn = c.Audio.Clone()
		c.hasBeforeFadeIn = true
	}
	c.Audio = envelope.ApplyFade(c.Audio, params.DurationSamples, params.Points, params.Bends, envelope.FadeIn)
	c.FadeIn = &params
}

// ApplyFadeOut is the symmetric operation for the tail of the clip.
func (c *Clip) ApplyFadeOut(params FadeParams) {
	if c.hasBeforeFadeOut {
		c.Audio = c.beforeFadeOut.Clone()
		if c.FadeIn != nil {
			c.Audio = envelope.ApplyFade(c.Audio, c.FadeIn.DurationSamples, c.FadeIn.Points, c.FadeIn.Bends, envelope.FadeIn)
		}
	}
	if !c.hasBeforeFadeOut {
		c.beforeFadeOut = c.Audio.Clone()
		c.hasBeforeFadeOut = true
	}
	c.Audio = envelope.ApplyFade(c.Audio, params.DurationSamples, params.Points, params.Bends, envelope.FadeOut)
	c.FadeOut = &params
}
