package timeline

import "glitchmaker/dsp"

// Split cuts the clip containing global sample position pos into two
// clips at that boundary. pos must fall strictly inside the clip.
// Grounded on original_source/gui/main_window.py's _split_clip.
func (t *Timeline) Split(clipID string, pos int) bool {
	clip := t.FindClip(clipID)
	if clip == nil {
		return false
	}
	local := pos - clip.Position
	if local <= 0 || local >= clip.DurationSamples() {
		return false
	}

	idx := t.indexOf(clip)
	if idx < 0 {
		return false
	}

	d1 := clip.Audio.Slice(0, local)
	d2 := clip.Audio.Slice(local, clip.Audio.Frames())

	c1 := NewClip(clip.Name+"_L", d1, clip.Position, t.NextColor())
	c2 := NewClip(clip.Name+"_R", d2, clip.Position+local, t.NextColor())

	newClips := make([]*Clip, 0, len(t.Clips)+1)
	newClips = append(newClips, t.Clips[:idx]...)
	newClips = append(newClips, c1, c2)
	newClips = append(newClips, t.Clips[idx+1:]...)
	t.Clips = newClips
	t.RepositionClips()
	return true
}

// Duplicate inserts a copy of the clip immediately after it.
// Grounded on original_source/gui/main_window.py's _dup_clip.
func (t *Timeline) Duplicate(clipID string) *Clip {
	clip := t.FindClip(clipID)
	if clip == nil {
		return nil
	}
	idx := t.indexOf(clip)
	if idx < 0 {
		return nil
	}
	dup := NewClip(clip.Name+" (dup)", clip.Audio.Clone(), clip.EndPosition(), t.NextColor())
	newClips := make([]*Clip, 0, len(t.Clips)+1)
	newClips = append(newClips, t.Clips[:idx+1]...)
	newClips = append(newClips, dup)
	newClips = append(newClips, t.Clips[idx+1:]...)
	t.Clips = newClips
	t.RepositionClips()
	return dup
}

// Delete removes a clip, refusing to remove the last remaining one.
// Grounded on original_source/gui/main_window.py's _del_clip.
func (t *Timeline) Delete(clipID string) bool {
	if len(t.Clips) <= 1 {
		return false
	}
	before := len(t.Clips)
	t.RemoveClip(clipID)
	return len(t.Clips) < before
}

// CutSilence replaces [selStart, selEnd) with silence, splitting every
// overlapping clip into up to three clips (before/silence/after).
// Grounded on original_source/gui/main_window.py's _cut_replace_silence.
func (t *Timeline) CutSilence(selStart, selEnd int) {
	var newClips []*Clip
	for _, clip := range t.Clips {
		cs, ce := clip.Position, clip.EndPosition()
		if selEnd <= cs || selStart >= ce {
			newClips = append(newClips, clip)
			continue
		}
		ovStart := maxInt(selStart, cs) - cs
		ovEnd := minInt(selEnd, ce) - cs
		pos := cs

		if ovStart > 0 {
			d1 := clip.Audio.Slice(0, ovStart)
			c1 := NewClip(clip.Name+"_A", d1, pos, t.NextColor())
			newClips = append(newClips, c1)
			pos += d1.Frames()
		}
		if silLen := ovEnd - ovStart; silLen > 0 {
			d2 := dsp.NewBuffer(silLen, clip.Audio.Channels, clip.Audio.SampleRate)
			c2 := NewClip(clip.Name+"_S", d2, pos, t.NextColor())
			newClips = append(newClips, c2)
			pos += silLen
		}
		if ovEnd < clip.Audio.Frames() {
			d3 := clip.Audio.Slice(ovEnd, clip.Audio.Frames())
			c3 := NewClip(clip.Name+"_B", d3, pos, t.NextColor())
			newClips = append(newClips, c3)
		}
	}
	t.Clips = newClips
	t.RepositionClips()
}

// CutSplice removes [selStart, selEnd) entirely and closes the gap,
// splitting every overlapping clip into up to two clips (before/after).
// Grounded on original_source/gui/main_window.py's _cut_splice.
func (t *Timeline) CutSplice(selStart, selEnd int) {
	var newClips []*Clip
	for _, clip := range t.Clips {
		cs, ce := clip.Position, clip.EndPosition()
		if selEnd <= cs || selStart >= ce {
			newClips = append(newClips, clip)
			continue
		}
		ovStart := maxInt(selStart, cs) - cs
		ovEnd := minInt(selEnd, ce) - cs

		var parts []*Clip
		if ovStart > 0 {
			d1 := clip.Audio.Slice(0, ovStart)
			parts = append(parts, NewClip(clip.Name+"_A", d1, clip.Position, t.NextColor()))
		}
		if ovEnd < clip.Audio.Frames() {
			d2 := clip.Audio.Slice(ovEnd, clip.Audio.Frames())
			parts = append(parts, NewClip(clip.Name+"_B", d2, clip.Position, t.NextColor()))
		}
		newClips = append(newClips, parts...)
	}
	if len(newClips) == 0 && len(t.Clips) > 0 {
		empty := dsp.NewBuffer(1, 2, t.SampleRate)
		newClips = append(newClips, NewClip("Empty", empty, 0, t.NextColor()))
	}
	t.Clips = newClips
	t.RepositionClips()
}

func (t *Timeline) indexOf(clip *Clip) int {
	for i, c := range t.Clips {
		if c == clip {
			return i
		}
	}
	return -1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
