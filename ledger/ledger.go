package ledger

import (
	"errors"
	"sync"

	"glitchmaker/dsp"
	"glitchmaker/timeline"
)

// ErrConfirmationRequired is returned by DeleteOp when removing a
// structural op would discard one or more ops after it; the caller must
// call DeleteOp again with confirmed set to true once the user has
// confirmed the data loss.
var ErrConfirmationRequired = errors.New("ledger: deleting this op discards later history, confirmation required")

// undoRecord is a full history snapshot: (description, a clone of the op
// list, the base audio at that point, and the clip descriptors). Grounded
// on the original's push_undo snapshot tuple.
type undoRecord struct {
	desc      string
	ops       []*Operation
	baseAudio dsp.Buffer
	clips     []ClipDescriptor
}

// Ledger is the single mutable source of truth for a project's edit
// history: the append-only (but editable) op list, undo/redo stacks, and
// the timeline it renders against. The GUI/control thread is its sole
// writer, guarded by Mu.
type Ledger struct {
	Mu sync.Mutex

	Ops          []*Operation
	Timeline     *timeline.Timeline
	CurrentAudio dsp.Buffer
	SampleRate   int

	initialState *Snapshot
	undoStack    []undoRecord
	redoStack    []undoRecord
}

// New creates an empty ledger bound to tl, capturing tl's current state as
// the initial snapshot so renderFromOps always has an origin to replay
// from even before any structural op exists.
func New(tl *timeline.Timeline, audio dsp.Buffer, sampleRate int) *Ledger {
	l := &Ledger{
		Timeline:     tl,
		CurrentAudio: audio,
		SampleRate:   sampleRate,
	}
	l.initialState = l.snapshotNow()
	return l
}

func (l *Ledger) snapshotNow() *Snapshot {
	descs := make([]ClipDescriptor, len(l.Timeline.Clips))
	for i, c := range l.Timeline.Clips {
		descs[i] = ClipDescriptor{ID: c.ID, Name: c.Name, Audio: c.Audio.Clone(), Position: c.Position, Color: c.Color}
	}
	return &Snapshot{BaseAudio: l.CurrentAudio.Clone(), Clips: descs}
}

func (l *Ledger) pushUndo(desc string) {
	opsClone := make([]*Operation, len(l.Ops))
	copy(opsClone, l.Ops)
	l.undoStack = append(l.undoStack, undoRecord{
		desc:      desc,
		ops:       opsClone,
		baseAudio: l.CurrentAudio.Clone(),
		clips:     l.snapshotNow().Clips,
	})
	l.redoStack = nil
}

// Undo restores the most recent undo record, pushing the current state
// onto the redo stack. Returns false if there is nothing to undo.
func (l *Ledger) Undo() bool {
	if len(l.undoStack) == 0 {
		return false
	}
	rec := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]

	redoOps := make([]*Operation, len(l.Ops))
	copy(redoOps, l.Ops)
	l.redoStack = append(l.redoStack, undoRecord{desc: rec.desc, ops: redoOps, baseAudio: l.CurrentAudio.Clone(), clips: l.snapshotNow().Clips})

	l.Ops = rec.ops
	l.CurrentAudio = rec.baseAudio
	l.restoreClips(rec.clips)
	return true
}

// Redo re-applies a previously undone change. Returns false if there is
// nothing to redo.
func (l *Ledger) Redo() bool {
	if len(l.redoStack) == 0 {
		return false
	}
	rec := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]

	undoOps := make([]*Operation, len(l.Ops))
	copy(undoOps, l.Ops)
	l.undoStack = append(l.undoStack, undoRecord{desc: rec.desc, ops: undoOps, baseAudio: l.CurrentAudio.Clone(), clips: l.snapshotNow().Clips})

	l.Ops = rec.ops
	l.CurrentAudio = rec.baseAudio
	l.restoreClips(rec.clips)
	return true
}

// HistoryEntry is the (description, op list) pair project.Save serializes
// for each undo/redo stack entry. The base-audio/clip snapshot half of
// undoRecord is not part of the documented project.json schema and is
// deliberately left out — history is never re-applied on load, only shown.
type HistoryEntry struct {
	Desc string
	Ops  []*Operation
}

// UndoHistory returns the current undo stack as (desc, ops) entries,
// oldest first, for project.Save to serialize.
func (l *Ledger) UndoHistory() []HistoryEntry {
	return historyEntries(l.undoStack)
}

// RedoHistory returns the current redo stack as (desc, ops) entries,
// oldest first, for project.Save to serialize.
func (l *Ledger) RedoHistory() []HistoryEntry {
	return historyEntries(l.redoStack)
}

func historyEntries(stack []undoRecord) []HistoryEntry {
	if len(stack) == 0 {
		return nil
	}
	entries := make([]HistoryEntry, len(stack))
	for i, rec := range stack {
		entries[i] = HistoryEntry{Desc: rec.desc, Ops: rec.ops}
	}
	return entries
}

func (l *Ledger) restoreClips(descs []ClipDescriptor) {
	clips := make([]*timeline.Clip, len(descs))
	for i, d := range descs {
		clips[i] = timeline.NewClip(d.Name, d.Audio.Clone(), d.Position, d.Color)
		clips[i].ID = d.ID
	}
	l.Timeline.Clips = clips
}

// AppendProcessingOp pushes an undo snapshot, appends an effect or
// automation op, and applies just that op to CurrentAudio (the original's
// "fast path" — full re-render isn't needed for a freshly appended op).
func (l *Ledger) AppendProcessingOp(op *Operation) error {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	l.pushUndo(op.Name)
	l.Ops = append(l.Ops, op)
	return l.applySingleOp(op)
}

// AppendStructuralOp appends an already-performed structural op (the
// caller has already mutated the Timeline/CurrentAudio) and attaches a
// fresh state snapshot to it.
func (l *Ledger) AppendStructuralOp(op *Operation) {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	l.pushUndo(op.Name)
	op.StateAfter = l.snapshotNow()
	l.Ops = append(l.Ops, op)
}

// ToggleOp flips a processing op's Enabled flag and re-renders. Structural
// ops cannot be toggled.
func (l *Ledger) ToggleOp(uid string) error {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	op := l.findOp(uid)
	if op == nil || op.Kind.IsStructural() {
		return nil
	}
	l.pushUndo("Toggle : " + op.Name)
	op.Enabled = !op.Enabled
	return l.renderFromOps()
}

// MoveOp swaps a processing op with its neighbor at idx+direction.
// Refuses to move a structural op or swap across one.
func (l *Ledger) MoveOp(uid string, direction int) error {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	idx := l.indexOf(uid)
	if idx < 0 {
		return nil
	}
	op := l.Ops[idx]
	if op.Kind.IsStructural() {
		return nil
	}
	newIdx := idx + direction
	if newIdx < 0 || newIdx >= len(l.Ops) {
		return nil
	}
	if l.Ops[newIdx].Kind.IsStructural() {
		return nil
	}
	l.pushUndo("Move : " + op.Name)
	l.Ops[idx], l.Ops[newIdx] = l.Ops[newIdx], l.Ops[idx]
	return l.renderFromOps()
}

// DeleteOp removes an op by uid.
//   - Structural op with later ops: returns ErrConfirmationRequired unless
//     confirmed is true, in which case the ledger is truncated to [0, idx).
//   - Processing op before the last structural op: already overridden,
//     removed with no re-render.
//   - Processing op after the last structural op: removed and re-rendered.
func (l *Ledger) DeleteOp(uid string, confirmed bool) error {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	idx := l.indexOf(uid)
	if idx < 0 {
		return nil
	}
	op := l.Ops[idx]
	lastStruct := l.lastStructuralIndex()

	if op.Kind.IsStructural() {
		opsAfter := len(l.Ops) - idx - 1
		if opsAfter > 0 && !confirmed {
			return ErrConfirmationRequired
		}
		l.pushUndo("Delete : " + op.Name)
		l.Ops = l.Ops[:idx]
		return l.renderFromOps()
	}

	if idx < lastStruct {
		l.pushUndo("Delete : " + op.Name)
		l.Ops = append(l.Ops[:idx], l.Ops[idx+1:]...)
		return nil
	}

	l.pushUndo("Delete : " + op.Name)
	l.Ops = append(l.Ops[:idx], l.Ops[idx+1:]...)
	return l.renderFromOps()
}

// ReorderClips rearranges the timeline's clips to match the given id order
// and records it as a KindReorder structural op, mirroring the original's
// _on_reorder (the GUI drags clips into their new order, then the backend
// just pushes undo and snapshots the result). Ids not present in order are
// left in their current relative order after the named ones. Re-renders so
// CurrentAudio reflects the new clip arrangement.
func (l *Ledger) ReorderClips(order []string) error {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	byID := make(map[string]*timeline.Clip, len(l.Timeline.Clips))
	for _, c := range l.Timeline.Clips {
		byID[c.ID] = c
	}

	reordered := make([]*timeline.Clip, 0, len(l.Timeline.Clips))
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if c, ok := byID[id]; ok {
			reordered = append(reordered, c)
			seen[id] = true
		}
	}
	for _, c := range l.Timeline.Clips {
		if !seen[c.ID] {
			reordered = append(reordered, c)
		}
	}
	l.Timeline.Clips = reordered
	l.Timeline.RepositionClips()

	l.pushUndo("Reorder")
	l.CurrentAudio = l.Timeline.Render()
	op := NewOperation(KindReorder, "↕ Reorder")
	op.StateAfter = l.snapshotNow()
	l.Ops = append(l.Ops, op)
	return nil
}

// ClearAllOps discards the entire op list and re-renders from the initial
// snapshot.
func (l *Ledger) ClearAllOps() error {
	l.Mu.Lock()
	defer l.Mu.Unlock()

	if len(l.Ops) == 0 {
		return nil
	}
	l.pushUndo("Clear all history")
	l.Ops = nil
	return l.renderFromOps()
}

func (l *Ledger) findOp(uid string) *Operation {
	for _, o := range l.Ops {
		if o.UID == uid {
			return o
		}
	}
	return nil
}

func (l *Ledger) indexOf(uid string) int {
	for i, o := range l.Ops {
		if o.UID == uid {
			return i
		}
	}
	return -1
}

func (l *Ledger) lastStructuralIndex() int {
	last := -1
	for i, o := range l.Ops {
		if o.Enabled && o.Kind.IsStructural() {
			last = i
		}
	}
	return last
}

// IsOverridden reports whether the op at idx is a processing op that sits
// before the last enabled structural op — already baked into that op's
// snapshot, so deleting it triggers no re-render. Exposed for UI display.
func (l *Ledger) IsOverridden(idx int) bool {
	if idx < 0 || idx >= len(l.Ops) || l.Ops[idx].Kind.IsStructural() {
		return false
	}
	return idx < l.lastStructuralIndex()
}
