package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/decode"
	"glitchmaker/dsp"
	"glitchmaker/ledger"
)

func writeTestWAV(t *testing.T, path string, frames int) {
	t.Helper()
	buf := dsp.NewBuffer(frames, 2, 44100)
	for i := range buf.Samples {
		buf.Samples[i] = 0.25
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, decode.EncodeWAV(f, buf))
}

func TestLoad_RawAudioFileBecomesSingleClipTimeline(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "clip.wav")
	writeTestWAV(t, path, 2000)

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.ProjectSrc)
	require.Len(t, s.Ledger.Timeline.Clips, 1)
	assert.Equal(t, "clip.wav", s.Ledger.Timeline.Clips[0].Name)
}

func TestSessionSaveLoad_RoundTripsThroughProjectFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	audioPath := filepath.Join(t.TempDir(), "src.wav")
	writeTestWAV(t, audioPath, 1000)

	s, err := Load(audioPath)
	require.NoError(t, err)

	op := ledger.NewOperation(ledger.KindEffect, "volume")
	op.EffectID = dsp.Volume
	op.IsGlobal = true
	op.Params = dsp.Params{"gain_pct": 75.0}
	require.NoError(t, s.Ledger.AppendProcessingOp(op))

	projPath := filepath.Join(t.TempDir(), "session.gspi")
	require.NoError(t, s.Save(projPath))

	reloaded, err := Load(projPath)
	require.NoError(t, err)
	assert.True(t, reloaded.ProjectSrc)
	require.Len(t, reloaded.Ledger.Ops, 1)
	assert.Equal(t, dsp.Volume, reloaded.Ledger.Ops[0].EffectID)
}
