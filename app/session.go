// Package app wires together the ledger, timeline, preset manager, and
// playback engine into the sessions the TUI and the cobra subcommands
// (render, play) share, plus the project/raw-audio load dispatch that
// feeds them.
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"glitchmaker/config"
	"glitchmaker/decode"
	"glitchmaker/ledger"
	"glitchmaker/preset"
	"glitchmaker/project"
	"glitchmaker/timeline"
)

// Session bundles the state one glitchmaker invocation operates on,
// whether that's the interactive TUI, a headless render, or a headless
// play.
type Session struct {
	Ledger     *ledger.Ledger
	Presets    *preset.Manager
	Source     string
	ProjectSrc bool
}

// Load opens path, dispatching on extension: a config.ProjectExtension
// (.gspi) archive restores its timeline and ledger ops via project.Load;
// anything else is decoded as raw audio into a fresh single-clip timeline.
// Grounded on original_source/gui/main_window.py's open_file, which makes
// the same project-vs-audio dispatch on extension.
func Load(path string) (*Session, error) {
	presets := preset.NewManager(config.DataDir())

	if strings.EqualFold(filepath.Ext(path), config.ProjectExtension) {
		return loadProject(path, presets)
	}
	return loadAudioFile(path, presets)
}

func loadAudioFile(path string, presets *preset.Manager) (*Session, error) {
	buf, err := decode.Load(path)
	if err != nil {
		return nil, fmt.Errorf("app: decode %s: %w", path, err)
	}
	tl := timeline.New(buf.SampleRate)
	tl.AddClip(buf, buf.SampleRate, filepath.Base(path), nil)

	l := ledger.New(tl, tl.Render(), buf.SampleRate)
	return &Session{Ledger: l, Presets: presets, Source: path}, nil
}

func loadProject(path string, presets *preset.Manager) (*Session, error) {
	res, err := project.Load(path)
	if err != nil {
		return nil, fmt.Errorf("app: load project %s: %w", path, err)
	}

	base := res.Timeline.Render()
	if res.BaseAudio != nil {
		base = *res.BaseAudio
	}

	l := ledger.New(res.Timeline, base, res.SampleRate)
	for _, opMeta := range res.EffectOps {
		op := opMetaToOperation(opMeta)
		if op.Kind.IsStructural() {
			l.AppendStructuralOp(op)
			continue
		}
		if err := l.AppendProcessingOp(op); err != nil {
			return nil, fmt.Errorf("app: replay op %s: %w", op.Name, err)
		}
	}

	return &Session{Ledger: l, Presets: presets, Source: res.Source, ProjectSrc: true}, nil
}

// Save writes the session out as a .gspi project archive, including the
// current undo/redo history for display/tooling purposes (Load never
// re-applies it; a reload always re-renders from EffectOps).
func (s *Session) Save(path string) error {
	return project.Save(path, s.Ledger.Timeline, s.Source, nil, s.Ledger.Ops, s.Ledger.UndoHistory(), s.Ledger.RedoHistory())
}
