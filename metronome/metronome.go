// Package metronome synthesizes click bursts and mixes them into the
// playback engine's output buffer in lock step with transport position.
//
// Grounded on original_source/core/metronome.py: the same sine-burst +
// exponential decay click synthesis, the same accent-on-beat-one rule,
// and the same two-pass mix (carry the tail of a click that started in
// the previous callback, then walk every beat boundary inside this one).
package metronome

import "math"

const (
	minBPM = 20.0
	maxBPM = 300.0
	maxBar = 12
)

// Metronome holds the synthesized click buffers and transport settings.
// Not safe for concurrent read/write; the playback callback only ever
// calls MixInto, while control-thread setters are expected to run on the
// same goroutine that owns the engine's locked state.
type Metronome struct {
	Enabled    bool
	BPM        float64
	Volume     float64
	BeatsPerBar int
	sampleRate int

	click  []float32
	accent []float32
}

// New returns a disabled metronome at 120 BPM for the given sample rate.
func New(sampleRate int) *Metronome {
	m := &Metronome{
		BPM:         120.0,
		Volume:      0.5,
		BeatsPerBar: 4,
		sampleRate:  sampleRate,
	}
	m.rebuild()
	return m
}

func makeClick(sr int, freq, durMS, vol float64) []float32 {
	n := int(float64(sr) * durMS / 1000.0)
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sr)
		out[i] = float32(math.Sin(2*math.Pi*freq*t) * math.Exp(-t*300) * vol)
	}
	return out
}

func (m *Metronome) rebuild() {
	m.click = makeClick(m.sampleRate, 1000.0, 15.0, m.Volume)
	m.accent = makeClick(m.sampleRate, 1500.0, 18.0, m.Volume*1.3)
}

// SetBPM clamps and applies a new tempo.
func (m *Metronome) SetBPM(bpm float64) {
	if bpm < minBPM {
		bpm = minBPM
	} else if bpm > maxBPM {
		bpm = maxBPM
	}
	m.BPM = bpm
}

// SetVolume clamps the click volume to [0, 1] and resynthesizes.
func (m *Metronome) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m.Volume = v
	m.rebuild()
}

// SetBeatsPerBar clamps the bar length to [1, 12].
func (m *Metronome) SetBeatsPerBar(n int) {
	if n < 1 {
		n = 1
	} else if n > maxBar {
		n = maxBar
	}
	m.BeatsPerBar = n
}

// SetSampleRate resynthesizes the click buffers if the rate actually changed.
func (m *Metronome) SetSampleRate(sr int) {
	if sr != m.sampleRate {
		m.sampleRate = sr
		m.rebuild()
	}
}

// SamplesPerBeat returns the beat period in samples at the current BPM.
func (m *Metronome) SamplesPerBeat() int {
	if m.BPM <= 0 {
		return 0
	}
	return int(float64(m.sampleRate) * 60.0 / m.BPM)
}

// MixInto adds click samples into out (interleaved, channels ch) covering
// [position, position+frames) of the transport timeline. Beat one of each
// bar gets the louder/higher accent click; every other beat gets the plain
// click. A click whose burst began in the previous callback but still has
// samples left is carried over and added at the start of this buffer.
func (m *Metronome) MixInto(out []float32, ch, position, frames int) {
	if !m.Enabled || m.BPM <= 0 {
		return
	}
	spb := m.SamplesPerBeat()
	if spb <= 0 {
		return
	}
	maxLen := len(m.click)
	if len(m.accent) > maxLen {
		maxLen = len(m.accent)
	}
	mixCh := ch
	if mixCh > 2 {
		mixCh = 2
	}

	bp := position % spb
	if bp > 0 && bp < maxLen {
		beatNum := (position / spb) % m.BeatsPerBar
		clk := m.clickFor(beatNum)
		if bp < len(clk) {
			tail := clk[bp:]
			n := len(tail)
			if n > frames {
				n = frames
			}
			for i := 0; i < n; i++ {
				for c := 0; c < mixCh; c++ {
					out[i*ch+c] += tail[i]
				}
			}
		}
	}

	first := position
	if position%spb != 0 {
		first = (position/spb + 1) * spb
	}
	for beat := first; beat < position+frames; beat += spb {
		off := beat - position
		if off < 0 {
			continue
		}
		beatNum := (beat / spb) % m.BeatsPerBar
		clk := m.clickFor(beatNum)
		n := len(clk)
		if remaining := frames - off; n > remaining {
			n = remaining
		}
		for i := 0; i < n; i++ {
			for c := 0; c < mixCh; c++ {
				out[(off+i)*ch+c] += clk[i]
			}
		}
	}
}

func (m *Metronome) clickFor(beatNum int) []float32 {
	if beatNum == 0 {
		return m.accent
	}
	return m.click
}
