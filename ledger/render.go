package ledger

import (
	"github.com/charmbracelet/log"

	"glitchmaker/automation"
	"glitchmaker/dsp"
)

// applySingleOp is the fast path used right after an op is appended: run
// just this op against CurrentAudio rather than replaying the whole chain.
func (l *Ledger) applySingleOp(op *Operation) error {
	out, err := l.runOp(l.CurrentAudio, op)
	if err != nil {
		return err
	}
	l.CurrentAudio = out
	l.resyncClips()
	return nil
}

// renderFromOps is the canonical replay: find the last enabled structural
// op, restore its attached snapshot (or the ledger's initial snapshot if
// there is none), then walk every enabled op after it in order, applying
// effect/automation processing on top. Mirrors
// original_source/gui/main_window.py's _render_from_ops.
func (l *Ledger) renderFromOps() error {
	lastStruct := l.lastStructuralIndex()

	var base Snapshot
	if lastStruct >= 0 && l.Ops[lastStruct].StateAfter != nil {
		base = *l.Ops[lastStruct].StateAfter
	} else {
		base = *l.initialState
	}

	l.CurrentAudio = base.BaseAudio.Clone()
	l.restoreClips(base.Clips)

	for i := lastStruct + 1; i < len(l.Ops); i++ {
		op := l.Ops[i]
		if !op.Enabled || op.Kind.IsStructural() {
			continue
		}
		out, err := l.runOp(l.CurrentAudio, op)
		if err != nil {
			log.Warn("effect compute failed, op skipped", "op", op.Name, "effect", op.EffectID, "err", err)
			op.Failed = true
			continue
		}
		op.Failed = false
		l.CurrentAudio = out
	}
	l.resyncClips()
	return nil
}

// runOp applies a single processing op (effect or automation) to audio,
// returning the full buffer with the op's region spliced/replaced.
// Tail-extending effects whose output is longer than the input region are
// concatenated in rather than overwritten in place, per spec.md §4.5.
func (l *Ledger) runOp(audio dsp.Buffer, op *Operation) (dsp.Buffer, error) {
	start, end := op.Start, op.End
	if op.IsGlobal {
		start, end = 0, audio.Frames()
	}
	if end > audio.Frames() {
		end = audio.Frames()
	}
	if start < 0 || start >= end {
		return audio, nil
	}

	switch op.Kind {
	case KindAutomation:
		effect, ok := dsp.Get(op.EffectID)
		if !ok {
			return audio, nil
		}
		return automation.ApplyMulti(audio, start, end, effect, op.Params, op.AutoParams, l.SampleRate), nil

	case KindEffect:
		effect, ok := dsp.Get(op.EffectID)
		if !ok {
			return audio, nil
		}
		processed, err := effect.Process(audio, start, end, l.SampleRate, op.Params)
		if err != nil {
			return audio, err
		}
		return processed, nil

	default:
		return audio, nil
	}
}

// resyncClips rescales every clip's Position proportionally when
// CurrentAudio's length has drifted from the timeline's own total
// duration (a tail-extending effect growing or shrinking the render),
// mirroring the original's _sync_history_chain clip repositioning.
func (l *Ledger) resyncClips() {
	total := l.Timeline.TotalDurationSamples()
	newTotal := l.CurrentAudio.Frames()
	if total <= 0 || newTotal <= 0 || total == newTotal {
		return
	}
	ratio := float64(newTotal) / float64(total)
	for _, c := range l.Timeline.Clips {
		c.Position = int(float64(c.Position) * ratio)
	}
}
