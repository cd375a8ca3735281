package timeline

import (
	"sort"

	"glitchmaker/dsp"
)

// Timeline is an ordered list of clips rendered to one stereo buffer.
type Timeline struct {
	Clips        []*Clip
	SampleRate   int
	colorCounter int
}

// New returns an empty timeline at the given project sample rate.
func New(sampleRate int) *Timeline {
	return &Timeline{SampleRate: sampleRate}
}

// Clear removes every clip.
func (t *Timeline) Clear() { t.Clips = nil }

// NextColor hands out the next golden-angle auto color and advances the
// counter, for callers that build a *Clip directly (e.g. split/duplicate).
func (t *Timeline) NextColor() string {
	c := generateDistinctColor(t.colorCounter)
	t.colorCounter++
	return c
}

// AddClip appends audio as a new clip. position == nil means "after the
// last clip"; the clip always gets the next auto-assigned distinct color.
func (t *Timeline) AddClip(audio dsp.Buffer, sr int, name string, position *int) *Clip {
	pos := 0
	if position != nil {
		pos = *position
	} else {
		for _, c := range t.Clips {
			if e := c.EndPosition(); e > pos {
				pos = e
			}
		}
	}
	clip := NewClip(name, audio.Clone(), pos, t.NextColor())
	isFirst := len(t.Clips) == 0
	t.Clips = append(t.Clips, clip)
	if isFirst {
		t.SampleRate = sr
	}
	return clip
}

// RemoveClip deletes a clip by id and closes the resulting gap.
func (t *Timeline) RemoveClip(id string) {
	for i, c := range t.Clips {
		if c.ID == id {
			t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
			break
		}
	}
	t.RepositionClips()
}

// RepositionClips sorts clips by position and packs them end-to-end,
// closing any gaps left by edits.
func (t *Timeline) RepositionClips() {
	sort.SliceStable(t.Clips, func(i, j int) bool { return t.Clips[i].Position < t.Clips[j].Position })
	pos := 0
	for _, c := range t.Clips {
		c.Position = pos
		pos += c.DurationSamples()
	}
}

// FindClip looks up a clip by id.
func (t *Timeline) FindClip(id string) *Clip {
	for _, c := range t.Clips {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// TotalDurationSamples returns the end position of the last clip.
func (t *Timeline) TotalDurationSamples() int {
	total := 0
	for _, c := range t.Clips {
		if e := c.EndPosition(); e > total {
			total = e
		}
	}
	return total
}

// Render sorts clips by position, resamples any clip whose rate differs
// from the timeline's, repositions to close gaps, and sums every clip's
// stereo-coerced samples at its position into one stereo buffer.
func (t *Timeline) Render() dsp.Buffer {
	if len(t.Clips) == 0 {
		return dsp.NewBuffer(0, 2, t.SampleRate)
	}

	sort.SliceStable(t.Clips, func(i, j int) bool { return t.Clips[i].Position < t.Clips[j].Position })

	for _, c := range t.Clips {
		if c.Audio.SampleRate != t.SampleRate && c.Audio.SampleRate > 0 && t.SampleRate > 0 {
			newLen := int(int64(c.Audio.Frames()) * int64(t.SampleRate) / int64(c.Audio.SampleRate))
			if newLen > 0 && newLen != c.Audio.Frames() {
				c.Audio = Resample(c.Audio, newLen)
			}
			c.Audio.SampleRate = t.SampleRate
		}
	}

	t.RepositionClips()

	total := t.TotalDurationSamples()
	out := dsp.NewBuffer(total, 2, t.SampleRate)

	for _, c := range t.Clips {
		if c.Audio.Frames() == 0 {
			continue
		}
		stereo := c.Audio.ToStereo()
		s := c.Position
		e := s + stereo.Frames()
		if e > total {
			e = total
		}
		n := e - s
		for i := 0; i < n; i++ {
			out.Samples[(s+i)*2] += stereo.Samples[i*2]
			out.Samples[(s+i)*2+1] += stereo.Samples[i*2+1]
		}
	}

	return out
}
