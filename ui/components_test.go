package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"glitchmaker/dsp"
	"glitchmaker/ledger"
	"glitchmaker/timeline"
)

func TestRenderOpList_EmptyLedgerShowsPlaceholder(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(100, 2, 44100)
	tl.AddClip(audio, 44100, "clip", nil)
	l := ledger.New(tl, tl.Render(), 44100)

	assert.Contains(t, RenderOpList(l, -1), "no operations")
}

func TestRenderOpList_IncludesOperationName(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(100, 2, 44100)
	tl.AddClip(audio, 44100, "clip", nil)
	l := ledger.New(tl, tl.Render(), 44100)

	op := ledger.NewOperation(ledger.KindEffect, "volume")
	op.EffectID = dsp.Volume
	op.IsGlobal = true
	op.Params = dsp.Params{"gain_pct": 50.0}
	_ = l.AppendProcessingOp(op)

	out := RenderOpList(l, 0)
	assert.Contains(t, out, "volume")
}

func TestRenderTimeline_EmptyShowsPlaceholder(t *testing.T) {
	tl := timeline.New(44100)
	assert.Contains(t, RenderTimeline(tl, ""), "timeline is empty")
}

func TestRenderTimeline_RendersEachClipName(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(44100, 2, 44100)
	tl.AddClip(audio, 44100, "verse-one", nil)

	out := RenderTimeline(tl, "")
	assert.Contains(t, out, "verse-one")
}

func TestRenderTransport_ShowsPlayingOrPausedBadge(t *testing.T) {
	playing := RenderTransport(22050, 44100, 44100, true)
	assert.Contains(t, playing, "playing")

	paused := RenderTransport(0, 44100, 44100, false)
	assert.Contains(t, paused, "paused")
}

func TestRenderWaveform_ProducesHeaderBodyAndFooterRows(t *testing.T) {
	left := make([]float64, 128)
	right := make([]float64, 128)
	for i := range left {
		left[i] = 0.5
		right[i] = -0.5
	}

	out := RenderWaveform(left, right)
	lines := strings.Split(out, "\n")
	assert.Equal(t, WaveformHeight+2, len(lines), "header + body rows + footer")
}

func TestRenderWaveform_EmptyInputReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", RenderWaveform(nil, nil))
}

func TestRenderVUMeter_ProducesTwoLabeledLines(t *testing.T) {
	left := make([]float64, 64)
	right := make([]float64, 64)
	for i := range left {
		left[i] = 1
	}

	out := RenderVUMeter(left, right)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
}
