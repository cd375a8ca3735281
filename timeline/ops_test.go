package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/dsp"
)

func clipAudio(frames int, fill float32) dsp.Buffer {
	b := dsp.NewBuffer(frames, 2, 44100)
	for i := range b.Samples {
		b.Samples[i] = fill
	}
	return b
}

func TestTimeline_SplitDividesClipAtBoundary(t *testing.T) {
	tl := New(44100)
	c := tl.AddClip(clipAudio(100, 1), 44100, "clip", nil)

	require.True(t, tl.Split(c.ID, 40))
	require.Len(t, tl.Clips, 2)
	assert.Equal(t, 40, tl.Clips[0].DurationSamples())
	assert.Equal(t, 60, tl.Clips[1].DurationSamples())
	assert.Equal(t, 40, tl.Clips[1].Position)
}

func TestTimeline_SplitRejectsBoundaryOutsideClip(t *testing.T) {
	tl := New(44100)
	c := tl.AddClip(clipAudio(100, 1), 44100, "clip", nil)

	assert.False(t, tl.Split(c.ID, 0))
	assert.False(t, tl.Split(c.ID, 100))
	assert.Len(t, tl.Clips, 1)
}

func TestTimeline_DuplicateInsertsImmediatelyAfter(t *testing.T) {
	tl := New(44100)
	c := tl.AddClip(clipAudio(50, 1), 44100, "clip", nil)

	dup := tl.Duplicate(c.ID)
	require.NotNil(t, dup)
	require.Len(t, tl.Clips, 2)
	assert.Equal(t, c.EndPosition(), dup.Position)
}

func TestTimeline_DeleteRefusesLastClip(t *testing.T) {
	tl := New(44100)
	c := tl.AddClip(clipAudio(50, 1), 44100, "only", nil)

	assert.False(t, tl.Delete(c.ID))
	assert.Len(t, tl.Clips, 1)
}

func TestTimeline_CutSilenceReplacesRangeWithZeros(t *testing.T) {
	tl := New(44100)
	tl.AddClip(clipAudio(100, 1), 44100, "clip", nil)

	tl.CutSilence(40, 60)

	total := tl.TotalDurationSamples()
	assert.Equal(t, 100, total, "cut-to-silence preserves overall duration")

	rendered := tl.Render()
	for i := 40; i < 60; i++ {
		for c := 0; c < rendered.Channels; c++ {
			assert.Equal(t, float32(0), rendered.Samples[i*rendered.Channels+c])
		}
	}
}

func TestTimeline_CutSpliceClosesGapContiguously(t *testing.T) {
	tl := New(44100)
	tl.AddClip(clipAudio(100, 1), 44100, "clip", nil)

	tl.CutSplice(40, 60)

	assert.Equal(t, 80, tl.TotalDurationSamples(), "splice removes the cut range entirely")
	for i, c := range tl.Clips {
		if i == 0 {
			assert.Equal(t, 0, c.Position)
			continue
		}
		assert.Equal(t, tl.Clips[i-1].EndPosition(), c.Position, "clips must remain contiguous after splice")
	}
}
