package preset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/dsp"
	"glitchmaker/ledger"
	"glitchmaker/timeline"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewManager(t.TempDir())
}

func TestManager_AddAndDeletePreset(t *testing.T) {
	m := newTestManager(t)
	m.AddPreset("glitch-1", "test preset", []string{"weird"}, []EffectStep{
		{EffectID: dsp.Volume, Params: dsp.Params{"gain_pct": 150.0}},
	})

	p, ok := m.GetPreset("glitch-1")
	require.True(t, ok)
	assert.Equal(t, "weird", p.Tags[0])
	assert.False(t, p.Builtin)

	assert.True(t, m.DeletePreset("glitch-1"))
	_, ok = m.GetPreset("glitch-1")
	assert.False(t, ok)
}

func TestManager_DeleteTagCascadesToPresetsAndHidesFromAllTags(t *testing.T) {
	m := newTestManager(t)
	m.AddPreset("p1", "", []string{"retro"}, nil)

	assert.Contains(t, m.AllTags(), "retro")
	assert.True(t, m.DeleteTag("retro"))

	assert.NotContains(t, m.AllTags(), "retro")
	p, _ := m.GetPreset("p1")
	assert.NotContains(t, p.Tags, "retro")
}

func TestManager_ExportImportPresetsRoundTrips(t *testing.T) {
	m := newTestManager(t)
	m.AddPreset("export-me", "desc", []string{"tag-a"}, []EffectStep{
		{EffectID: dsp.Bitcrusher, Params: dsp.Params{"bits": 4.0}},
	})

	path := filepath.Join(t.TempDir(), "bundle.pspi")
	require.NoError(t, m.ExportPresets(path, nil))

	fresh := newTestManager(t)
	n, skipped, err := fresh.ImportPresets(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, skipped)

	p, ok := fresh.GetPreset("export-me")
	require.True(t, ok)
	assert.Equal(t, dsp.Bitcrusher, p.Effects[0].EffectID)
}

func TestManager_ImportSkipsDuplicateNames(t *testing.T) {
	m := newTestManager(t)
	m.AddPreset("dup", "", nil, nil)
	path := filepath.Join(t.TempDir(), "dup.pspi")
	require.NoError(t, m.ExportPresets(path, nil))

	n, skipped, err := m.ImportPresets(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []string{"dup"}, skipped)
}

func TestApplyPreset_AppendsOneGlobalOpPerEffectStep(t *testing.T) {
	tl := timeline.New(44100)
	audio := dsp.NewBuffer(200, 2, 44100)
	tl.AddClip(audio, 44100, "clip", nil)
	l := ledger.New(tl, tl.Render(), 44100)

	p := Preset{Name: "combo", Effects: []EffectStep{
		{EffectID: dsp.Volume, Params: dsp.Params{"gain_pct": 80.0}},
		{EffectID: dsp.Reverse, Params: dsp.Params{}},
	}}

	require.NoError(t, ApplyPreset(l, p))
	require.Len(t, l.Ops, 2)
	assert.Equal(t, dsp.Volume, l.Ops[0].EffectID)
	assert.Equal(t, dsp.Reverse, l.Ops[1].EffectID)
	assert.True(t, l.Ops[0].IsGlobal)
}
