package app

import (
	"glitchmaker/automation"
	"glitchmaker/dsp"
	"glitchmaker/envelope"
	"glitchmaker/ledger"
	"glitchmaker/project"
)

// opMetaToOperation rebuilds a ledger.Operation from its serialized form.
// StateAfter is deliberately left nil even for structural kinds —
// AppendStructuralOp re-derives it from the ledger's current
// timeline/audio state as it replays, exactly as project.Load's doc
// comment promises ("a fresh ledger.New is built... rather than
// round-tripping snapshots").
func opMetaToOperation(m project.OpMeta) *ledger.Operation {
	op := ledger.NewOperation(ledger.Kind(m.Kind), m.Name)
	op.UID = m.UID
	op.Enabled = m.Enabled
	op.EffectID = dsp.EffectID(m.EffectID)
	op.Params = m.Params
	op.Start = m.Start
	op.End = m.End
	op.IsGlobal = m.IsGlobal

	for _, p := range m.AutoParams {
		param := automation.Param{
			Key:        p.Key,
			Mode:       automation.Mode(p.Mode),
			DefaultVal: p.DefaultVal,
			TargetVal:  p.TargetVal,
			Value:      p.Value,
		}
		for _, pt := range p.Curve {
			param.Curve = append(param.Curve, envelope.Point{X: pt.X, Y: pt.Y})
		}
		op.AutoParams = append(op.AutoParams, param)
	}
	return op
}
