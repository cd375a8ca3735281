// Package ledger implements the non-destructive operation history: every
// edit — structural (split/duplicate/delete/cut/fade) or processing
// (effect/automation) — is appended as an Operation, and the current
// render is always a replay from the last structural snapshot forward.
//
// Grounded on original_source/gui/main_window.py's ledger handlers
// (_add_op, _render_from_ops, _render_auto_op, _delete_op, _toggle_op,
// _move_op, _sync_history_chain, _clear_all_ops) and
// original_source/gui/effect_history.py (the overridden-op flag).
package ledger

import (
	"time"

	"github.com/google/uuid"

	"glitchmaker/automation"
	"glitchmaker/dsp"
)

// Kind distinguishes structural ops (which rewrite the timeline and carry
// a state snapshot) from processing ops (effect/automation, replayed on
// top of the last structural snapshot).
type Kind string

const (
	KindEffect     Kind = "effect"
	KindAutomation Kind = "automation"

	KindAddClip     Kind = "add_clip"
	KindSplit       Kind = "split"
	KindDuplicate   Kind = "duplicate"
	KindDeleteClip  Kind = "delete_clip"
	KindCutSilence  Kind = "cut_silence"
	KindCutSplice   Kind = "cut_splice"
	KindFadeIn      Kind = "fade_in"
	KindFadeOut     Kind = "fade_out"

	// KindReorder is the timeline's drag-to-reorder-clips structural kind
	// (original_source/gui/timeline_widget.py's clips_reordered ->
	// main_window.py's _on_reorder). Distinct from MoveOp, which swaps the
	// order of two *processing* ops in the ledger and carries no snapshot.
	KindReorder Kind = "reorder"
)

// structuralKinds mirrors the original's _STRUCTURAL_TYPES set.
var structuralKinds = map[Kind]bool{
	KindAddClip:    true,
	KindSplit:      true,
	KindDuplicate:  true,
	KindDeleteClip: true,
	KindCutSilence: true,
	KindCutSplice:  true,
	KindFadeIn:     true,
	KindFadeOut:    true,
	KindReorder:    true,
}

// IsStructural reports whether a kind rewrites the timeline rather than
// processing audio in place.
func (k Kind) IsStructural() bool { return structuralKinds[k] }

// Snapshot is the (base_audio, clip descriptors) pair captured after a
// structural op, restored verbatim by renderFromOps when replaying.
type Snapshot struct {
	BaseAudio dsp.Buffer
	Clips     []ClipDescriptor
}

// ClipDescriptor is a minimal, serializable view of a timeline.Clip used
// in undo/redo and structural snapshots. Audio is the only heavy field; the
// ledger stores a clone of the clip's audio here when it takes a snapshot
// and clones it again when restoring clips from it.
type ClipDescriptor struct {
	ID       string
	Name     string
	Audio    dsp.Buffer
	Position int
	Color    string
}

// Operation is one entry in the ledger: either a processing op (EffectID +
// Params, or AutoParams) applied over [Start, End), or a structural op
// carrying the Snapshot taken right after it ran.
type Operation struct {
	UID       string
	Kind      Kind
	Name      string
	Timestamp time.Time
	Enabled   bool

	// Processing-op fields (Kind == KindEffect / KindAutomation).
	EffectID   dsp.EffectID
	Params     dsp.Params
	AutoParams []automation.Param
	Start, End int
	IsGlobal   bool

	// Structural-op field: state captured right after the op ran.
	StateAfter *Snapshot

	// Failed is set by renderFromOps when this op's last compute attempt
	// errored; the op is skipped (audio passes through unchanged) rather
	// than aborting the whole render. UI display only, not serialized.
	Failed bool
}

// NewOperation stamps a fresh UID and timestamp, mirroring the original's
// str(uuid.uuid4())[:8] + datetime.now() op fields.
func NewOperation(kind Kind, name string) *Operation {
	return &Operation{
		UID:       uuid.New().String()[:8],
		Kind:      kind,
		Name:      name,
		Timestamp: time.Now(),
		Enabled:   true,
	}
}
