package dsp

import "fmt"

// EffectID is a stable effect identifier, e.g. "delay", "phaser".
type EffectID string

const (
	Volume       EffectID = "volume"
	Filter       EffectID = "filter"
	Pan          EffectID = "pan"
	Reverse      EffectID = "reverse"
	PitchShift   EffectID = "pitch_shift"
	TimeStretch  EffectID = "time_stretch"
	TapeStop     EffectID = "tape_stop"
	WaveOndulee  EffectID = "wave_ondulee"
	Autotune     EffectID = "autotune"
	Saturation   EffectID = "saturation"
	Distortion   EffectID = "distortion"
	Bitcrusher   EffectID = "bitcrusher"
	Chorus       EffectID = "chorus"
	Phaser       EffectID = "phaser"
	Tremolo      EffectID = "tremolo"
	RingMod      EffectID = "ring_mod"
	Delay        EffectID = "delay"
	Vinyl        EffectID = "vinyl"
	OTT          EffectID = "ott"
	Robot        EffectID = "robot"
	DigitalNoise EffectID = "digital_noise"
	Stutter      EffectID = "stutter"
	Granular     EffectID = "granular"
	Shuffle      EffectID = "shuffle"
	BufferFreeze EffectID = "buffer_freeze"
	Datamosh     EffectID = "datamosh"
)

// Effect is the compile-time registry entry every effect implements,
// replacing the source's dynamic module-scanning discovery (spec.md §9).
type Effect interface {
	ID() EffectID
	TailExtending() bool
	Params() []ParamSpec
	// Process runs the effect over audio[start:end) at sample rate sr.
	// It never mutates audio and always returns a fresh, clamped buffer.
	Process(audio Buffer, start, end, sr int, params Params) (Buffer, error)
}

var registry = map[EffectID]Effect{}

// Register adds an effect to the compile-time registry. Called from each
// effect file's init().
func Register(e Effect) {
	registry[e.ID()] = e
}

// Get resolves an effect by id.
func Get(id EffectID) (Effect, bool) {
	e, ok := registry[id]
	return e, ok
}

// MustGet panics if the id is unregistered; used only at startup wiring.
func MustGet(id EffectID) Effect {
	e, ok := Get(id)
	if !ok {
		panic(fmt.Sprintf("dsp: effect %q not registered", id))
	}
	return e
}

// All returns every registered effect id, stable order not guaranteed.
func All() []EffectID {
	ids := make([]EffectID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}
