// Package project implements the .gspi save/load format: a ZIP archive
// holding a JSON manifest, one PCM_16 WAV per timeline clip, and an
// optional base_audio.wav snapshot.
//
// Grounded on original_source/core/project.py's save_project/load_project
// (_ser_ops/_deser_ops — ops are serialized without their StateAfter
// snapshot, which is re-derived by re-rendering instead of round-tripped).
package project

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"glitchmaker/decode"
	"glitchmaker/dsp"
	"glitchmaker/ledger"
	"glitchmaker/timeline"
)

const formatVersion = "1.0"

// ClipMeta is a clip's manifest entry: everything but the audio itself,
// which lives alongside it in the archive as a WAV file.
type ClipMeta struct {
	Name     string `json:"name"`
	File     string `json:"file"`
	Position int    `json:"position"`
	Color    string `json:"color"`
}

// OpMeta is an Operation stripped of its heavy/non-serializable fields
// (StateAfter's audio, AutoParams' curve points are kept — they're small).
type OpMeta struct {
	UID        string                `json:"uid"`
	Kind       string                `json:"kind"`
	Name       string                `json:"name"`
	Enabled    bool                  `json:"enabled"`
	EffectID   string                `json:"effect_id,omitempty"`
	Params     dsp.Params            `json:"params,omitempty"`
	AutoParams []automationParamMeta `json:"auto_params,omitempty"`
	Start      int                   `json:"start"`
	End        int                   `json:"end"`
	IsGlobal   bool                  `json:"is_global"`
}

type automationParamMeta struct {
	Key        string         `json:"key"`
	Mode       int            `json:"mode"`
	DefaultVal float64        `json:"default_val"`
	TargetVal  float64        `json:"target_val"`
	Value      float64        `json:"value"`
	Curve      []envelopePoint `json:"curve,omitempty"`
}

// envelopePoint mirrors envelope.Point's two fields without importing the
// envelope package from project (which already depends on dsp, ledger, and
// timeline — this keeps the dependency edge one-way).
type envelopePoint struct {
	X, Y float64
}

// HistoryMeta is one undo/redo stack entry: a description and the op list
// it would restore. Mirrors ledger.HistoryEntry; the base-audio/clip
// snapshot half of the in-memory record is not part of this schema and is
// never round-tripped back in — Load always re-renders from EffectOps.
type HistoryMeta struct {
	Desc string   `json:"desc"`
	Ops  []OpMeta `json:"ops"`
}

// Manifest is project.json's top-level shape.
type Manifest struct {
	Version      string        `json:"version"`
	SampleRate   int           `json:"sample_rate"`
	SourcePath   string        `json:"source_path"`
	Clips        []ClipMeta    `json:"clips"`
	EffectOps    []OpMeta      `json:"effect_ops"`
	HasBaseAudio bool          `json:"has_base_audio"`
	UndoStack    []HistoryMeta `json:"undo_stack,omitempty"`
	RedoStack    []HistoryMeta `json:"redo_stack,omitempty"`
}

// memSeeker is a minimal in-memory io.WriteSeeker, needed because
// wav.Encoder backpatches its RIFF size fields at Close and zip.Writer's
// per-entry writer is not seekable.
type memSeeker struct {
	buf []byte
	pos int
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = len(m.buf)
	}
	m.pos = base + int(offset)
	return int64(m.pos), nil
}

// Save writes a complete project archive: the timeline's clips, an
// optional base audio buffer (the ledger's pre-op source), the ledger's op
// list (sans StateAfter — re-rendering restores it on load), and the
// undo/redo history's (desc, ops) pairs — serialized for display/tooling
// even though Load never re-applies them.
func Save(path string, tl *timeline.Timeline, sourcePath string, baseAudio *dsp.Buffer, ops []*ledger.Operation, undoStack, redoStack []ledger.HistoryEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	meta := Manifest{
		Version:    formatVersion,
		SampleRate: tl.SampleRate,
		SourcePath: sourcePath,
		EffectOps:  serializeOps(ops),
		UndoStack:  serializeHistory(undoStack),
		RedoStack:  serializeHistory(redoStack),
	}

	for i, c := range tl.Clips {
		name := fmt.Sprintf("clip_%03d.wav", i)
		if err := writeWAVEntry(zw, name, c.Audio); err != nil {
			return err
		}
		meta.Clips = append(meta.Clips, ClipMeta{Name: c.Name, File: name, Position: c.Position, Color: c.Color})
	}

	if baseAudio != nil {
		if err := writeWAVEntry(zw, "base_audio.wav", *baseAudio); err != nil {
			return err
		}
		meta.HasBaseAudio = true
	}

	w, err := zw.Create("project.json")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeWAVEntry(zw *zip.Writer, name string, audio dsp.Buffer) error {
	ms := &memSeeker{}
	if err := decode.EncodeWAV(ms, audio); err != nil {
		return fmt.Errorf("project: encode %s: %w", name, err)
	}
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(ms.buf)
	return err
}

// LoadResult mirrors the original's load_project return dict.
type LoadResult struct {
	Timeline   *timeline.Timeline
	SampleRate int
	Source     string
	BaseAudio  *dsp.Buffer
	EffectOps  []OpMeta
}

// Load reads a .gspi archive back into a LoadResult. Undo/redo history is
// deliberately not restored — a fresh ledger.New is built from the
// restored timeline and ops, exactly as the original re-renders from
// ops rather than round-tripping snapshots.
func Load(path string) (*LoadResult, error) {
	zr, err := openZip(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	manifestFile, ok := files["project.json"]
	if !ok {
		return nil, fmt.Errorf("project: missing project.json")
	}
	var meta Manifest
	if err := readJSON(manifestFile, &meta); err != nil {
		return nil, err
	}

	sr := meta.SampleRate
	if sr == 0 {
		sr = 44100
	}
	tl := timeline.New(sr)

	for _, cm := range meta.Clips {
		zf, ok := files[cm.File]
		if !ok {
			return nil, fmt.Errorf("project: missing clip file %s", cm.File)
		}
		buf, err := readWAVEntry(zf)
		if err != nil {
			return nil, err
		}
		pos := cm.Position
		c := tl.AddClip(buf, buf.SampleRate, cm.Name, &pos)
		c.Color = cm.Color
	}

	result := &LoadResult{Timeline: tl, SampleRate: sr, Source: meta.SourcePath, EffectOps: meta.EffectOps}

	if meta.HasBaseAudio {
		if zf, ok := files["base_audio.wav"]; ok {
			buf, err := readWAVEntry(zf)
			if err != nil {
				return nil, err
			}
			result.BaseAudio = &buf
		}
	}

	return result, nil
}

func serializeOps(ops []*ledger.Operation) []OpMeta {
	out := make([]OpMeta, 0, len(ops))
	for _, op := range ops {
		m := OpMeta{
			UID:      op.UID,
			Kind:     string(op.Kind),
			Name:     op.Name,
			Enabled:  op.Enabled,
			EffectID: string(op.EffectID),
			Start:    op.Start,
			End:      op.End,
			IsGlobal: op.IsGlobal,
		}
		if op.Params != nil {
			m.Params = op.Params
		}
		for _, p := range op.AutoParams {
			meta := automationParamMeta{
				Key: p.Key, Mode: int(p.Mode), DefaultVal: p.DefaultVal, TargetVal: p.TargetVal, Value: p.Value,
			}
			for _, pt := range p.Curve {
				meta.Curve = append(meta.Curve, envelopePoint{X: pt.X, Y: pt.Y})
			}
			m.AutoParams = append(m.AutoParams, meta)
		}
		out = append(out, m)
	}
	return out
}

func serializeHistory(entries []ledger.HistoryEntry) []HistoryMeta {
	if len(entries) == 0 {
		return nil
	}
	out := make([]HistoryMeta, len(entries))
	for i, e := range entries {
		out[i] = HistoryMeta{Desc: e.Desc, Ops: serializeOps(e.Ops)}
	}
	return out
}

func readWAVEntry(zf *zip.File) (dsp.Buffer, error) {
	rc, err := zf.Open()
	if err != nil {
		return dsp.Buffer{}, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return dsp.Buffer{}, err
	}
	return decode.DecodeWAVBytes(data)
}

func readJSON(zf *zip.File, v interface{}) error {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(v)
}

func openZip(path string) (*zip.ReadCloser, error) {
	return zip.OpenReader(path)
}
