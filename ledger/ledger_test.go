package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/dsp"
	"glitchmaker/timeline"
)

func newTestLedger(t *testing.T, frames int) *Ledger {
	t.Helper()
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(frames, 2, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = 0.5
	}
	tl.AddClip(audio, 44100, "source", nil)
	return New(tl, tl.Render(), 44100)
}

func gainOp(pct float64) *Operation {
	op := NewOperation(KindEffect, "volume")
	op.EffectID = dsp.Volume
	op.IsGlobal = true
	op.Params = dsp.Params{"gain_pct": pct}
	return op
}

func TestLedger_AppendProcessingOpAppliesImmediately(t *testing.T) {
	l := newTestLedger(t, 100)
	before := l.CurrentAudio.Peak()

	require.NoError(t, l.AppendProcessingOp(gainOp(50)))

	assert.InDelta(t, before*0.5, l.CurrentAudio.Peak(), 1e-6)
	assert.Len(t, l.Ops, 1)
}

func TestLedger_UndoRestoresPriorAudio(t *testing.T) {
	l := newTestLedger(t, 100)
	before := l.CurrentAudio.Clone()

	require.NoError(t, l.AppendProcessingOp(gainOp(50)))
	require.True(t, l.Undo())

	assert.Equal(t, before.Samples, l.CurrentAudio.Samples)
	assert.Empty(t, l.Ops)
}

func TestLedger_RedoReappliesUndoneOp(t *testing.T) {
	l := newTestLedger(t, 100)
	require.NoError(t, l.AppendProcessingOp(gainOp(50)))
	afterApply := l.CurrentAudio.Clone()

	require.True(t, l.Undo())
	require.True(t, l.Redo())

	assert.Equal(t, afterApply.Samples, l.CurrentAudio.Samples)
	assert.Len(t, l.Ops, 1)
}

func TestLedger_ToggleOpDisablesAndReverts(t *testing.T) {
	l := newTestLedger(t, 100)
	before := l.CurrentAudio.Clone()
	require.NoError(t, l.AppendProcessingOp(gainOp(50)))

	require.NoError(t, l.ToggleOp(l.Ops[0].UID))

	assert.False(t, l.Ops[0].Enabled)
	assert.Equal(t, before.Samples, l.CurrentAudio.Samples)
}

func TestLedger_DeleteStructuralOpWithLaterOpsRequiresConfirmation(t *testing.T) {
	l := newTestLedger(t, 100)
	structOp := NewOperation(KindFadeIn, "fade in")
	l.AppendStructuralOp(structOp)
	require.NoError(t, l.AppendProcessingOp(gainOp(50)))

	err := l.DeleteOp(structOp.UID, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Len(t, l.Ops, 2, "nothing should be removed without confirmation")

	require.NoError(t, l.DeleteOp(structOp.UID, true))
	assert.Empty(t, l.Ops)
}

func TestLedger_IsOverriddenBeforeStructuralBoundary(t *testing.T) {
	l := newTestLedger(t, 100)
	require.NoError(t, l.AppendProcessingOp(gainOp(50)))
	l.AppendStructuralOp(NewOperation(KindFadeOut, "fade out"))

	assert.True(t, l.IsOverridden(0), "processing op before the last structural op is baked in")
	assert.False(t, l.IsOverridden(1), "structural op itself is never overridden")
}

func TestLedger_DeleteOverriddenProcessingOpSkipsRerender(t *testing.T) {
	l := newTestLedger(t, 100)
	require.NoError(t, l.AppendProcessingOp(gainOp(50)))
	l.AppendStructuralOp(NewOperation(KindFadeOut, "fade out"))
	audioBefore := l.CurrentAudio.Clone()

	require.NoError(t, l.DeleteOp(l.Ops[0].UID, false))

	assert.Len(t, l.Ops, 1)
	assert.Equal(t, audioBefore.Samples, l.CurrentAudio.Samples, "removing an already-baked-in op should not re-render")
}

func TestLedger_UndoRedoHistoryExposesDescAndOps(t *testing.T) {
	l := newTestLedger(t, 100)
	require.NoError(t, l.AppendProcessingOp(gainOp(50)))
	history := l.UndoHistory()
	require.Len(t, history, 1)
	require.Empty(t, history[0].Ops, "pushUndo snapshots state *before* the op, so the first op leaves an empty prior-ops record")

	require.True(t, l.Undo())
	redo := l.RedoHistory()
	require.Len(t, redo, 1)
	assert.Len(t, redo[0].Ops, 1, "redo entry should carry the op list as it stood before the undo")

	require.True(t, l.Redo())
	undo := l.UndoHistory()
	require.Len(t, undo, 1)
}

func TestLedger_ReorderClipsRearrangesTimelineAndRecordsStructuralOp(t *testing.T) {
	l := newTestLedger(t, 100)
	second := dsp.NewBuffer(50, 2, 44100)
	l.Timeline.AddClip(second, 44100, "second", nil)
	require.Len(t, l.Timeline.Clips, 2)

	firstID := l.Timeline.Clips[0].ID
	secondID := l.Timeline.Clips[1].ID

	require.NoError(t, l.ReorderClips([]string{secondID, firstID}))

	require.Len(t, l.Timeline.Clips, 2)
	assert.Equal(t, secondID, l.Timeline.Clips[0].ID)
	assert.Equal(t, firstID, l.Timeline.Clips[1].ID)
	assert.Equal(t, 0, l.Timeline.Clips[0].Position)

	require.Len(t, l.Ops, 1)
	assert.Equal(t, KindReorder, l.Ops[0].Kind)
	assert.True(t, l.Ops[0].Kind.IsStructural())
	assert.NotNil(t, l.Ops[0].StateAfter)
}

// failingEffect is a dsp.Effect stub whose Process always errors, used only
// to exercise renderFromOps' failed-op handling without touching a real
// effect's params.
type failingEffect struct{}

func (failingEffect) ID() dsp.EffectID         { return "test_always_fails" }
func (failingEffect) TailExtending() bool      { return false }
func (failingEffect) Params() []dsp.ParamSpec  { return nil }
func (failingEffect) Process(audio dsp.Buffer, start, end, sr int, params dsp.Params) (dsp.Buffer, error) {
	return dsp.Buffer{}, assert.AnError
}

func TestLedger_RenderFromOpsFlagsFailedOpAndContinues(t *testing.T) {
	dsp.Register(failingEffect{})

	l := newTestLedger(t, 100)
	l.AppendStructuralOp(NewOperation(KindFadeIn, "fade in"))

	failOp := NewOperation(KindEffect, "always fails")
	failOp.EffectID = "test_always_fails"
	failOp.IsGlobal = true
	okOp := gainOp(50)
	l.Ops = append(l.Ops, failOp, okOp)

	require.NoError(t, l.renderFromOps())

	assert.True(t, failOp.Failed, "op whose Process errored should be flagged failing")
	assert.False(t, okOp.Failed, "a later, successful op should not be flagged")
}
