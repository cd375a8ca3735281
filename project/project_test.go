package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/dsp"
	"glitchmaker/ledger"
	"glitchmaker/timeline"
)

func TestSaveLoad_RoundTripsClipsAndOps(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(2000, 2, 44100)
	for i := range audio.Samples {
		audio.Samples[i] = 0.25
	}
	tl.AddClip(audio, 44100, "clip-a", nil)

	op := ledger.NewOperation(ledger.KindEffect, "volume")
	op.EffectID = dsp.Volume
	op.IsGlobal = true
	op.Params = dsp.Params{"gain_pct": 50.0}
	ops := []*ledger.Operation{op}

	undoStack := []ledger.HistoryEntry{{Desc: "Volume : volume", Ops: ops}}

	path := filepath.Join(t.TempDir(), "test.gspi")
	require.NoError(t, Save(path, tl, "source.wav", nil, ops, undoStack, nil))

	result, err := Load(path)
	require.NoError(t, err)

	require.Len(t, result.Timeline.Clips, 1)
	assert.Equal(t, "clip-a", result.Timeline.Clips[0].Name)
	assert.Equal(t, 2000, result.Timeline.Clips[0].DurationSamples())
	assert.Equal(t, "source.wav", result.Source)

	require.Len(t, result.EffectOps, 1)
	assert.Equal(t, string(ledger.KindEffect), result.EffectOps[0].Kind)
	assert.Equal(t, string(dsp.Volume), result.EffectOps[0].EffectID)
	assert.InDelta(t, 50.0, result.EffectOps[0].Params.Float("gain_pct", -1), 1e-6)
}

func TestSaveLoad_SerializesUndoRedoHistory(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(500, 2, 44100)
	tl.AddClip(audio, 44100, "clip", nil)

	op := ledger.NewOperation(ledger.KindEffect, "volume")
	op.EffectID = dsp.Volume
	op.Params = dsp.Params{"gain_pct": 75.0}
	undoStack := []ledger.HistoryEntry{{Desc: "Volume : volume", Ops: []*ledger.Operation{op}}}
	redoStack := []ledger.HistoryEntry{{Desc: "Toggle : volume", Ops: nil}}

	path := filepath.Join(t.TempDir(), "history.gspi")
	require.NoError(t, Save(path, tl, "", nil, nil, undoStack, redoStack))

	zr, err := openZip(path)
	require.NoError(t, err)
	defer zr.Close()

	var meta Manifest
	for _, f := range zr.File {
		if f.Name == "project.json" {
			require.NoError(t, readJSON(f, &meta))
		}
	}

	require.Len(t, meta.UndoStack, 1)
	assert.Equal(t, "Volume : volume", meta.UndoStack[0].Desc)
	require.Len(t, meta.UndoStack[0].Ops, 1)
	assert.Equal(t, string(dsp.Volume), meta.UndoStack[0].Ops[0].EffectID)

	require.Len(t, meta.RedoStack, 1)
	assert.Equal(t, "Toggle : volume", meta.RedoStack[0].Desc)
	assert.Empty(t, meta.RedoStack[0].Ops)
}

func TestSaveLoad_PreservesBaseAudioWhenPresent(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(500, 2, 44100)
	tl.AddClip(audio, 44100, "clip", nil)
	base := dsp.NewBuffer(500, 2, 44100)
	for i := range base.Samples {
		base.Samples[i] = 0.5
	}

	path := filepath.Join(t.TempDir(), "withbase.gspi")
	require.NoError(t, Save(path, tl, "", &base, nil, nil, nil))

	result, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, result.BaseAudio)
	assert.Equal(t, base.Frames(), result.BaseAudio.Frames())
}
