// Package playback drives real-time audio output through oto, replaying
// the ledger's current render while tracking position, looping, and
// metronome clicks.
//
// Grounded on the teacher's audio/engine.go (oto.Context/oto.Player, a
// mutex-protected state struct copied out before the per-sample work, and
// an io.Reader-shaped stream callback writing int16 PCM into a []byte) and
// on original_source/core/playback.py for the exact state machine
// (load/play/play_selection/pause/resume/stop/seek/set_volume/set_loop/
// suspend_stream/resume_stream/set_output_device).
package playback

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	"glitchmaker/dsp"
	"glitchmaker/metronome"
)

// ErrDeviceSelectionUnsupported is returned by SetOutputDevice: oto/v2 has
// no device-enumeration API, so output routing always uses the system
// default — the same limitation the teacher's engine has (it never offered
// device selection either, despite reading MIDI devices).
var ErrDeviceSelectionUnsupported = errors.New("playback: output device selection is not supported")

const bytesPerFrame = 4 // 2 channels * int16

// Engine is a single-stream stereo player. All mutable state is guarded by
// mu and copied out at the top of each Read callback, mirroring the
// teacher's RLock-copy-RUnlock pattern so the audio callback never blocks
// on anything but a short copy.
type Engine struct {
	mu sync.Mutex

	ctx    *oto.Context
	player oto.Player

	audio      dsp.Buffer
	sampleRate int
	position   int
	isPlaying  bool
	isPaused   bool
	volume     float64

	loopStart int
	loopEnd   int
	looping   bool
	hasLoop   bool

	// finished is signaled once, non-blockingly, when playback runs off the
	// end of the loaded audio without looping. The audio callback must
	// never call into control-thread/GUI code directly, so it posts to
	// this bounded queue instead of invoking a callback in place.
	finished chan struct{}

	metro *metronome.Metronome

	waveformMu  sync.RWMutex
	waveformL   []float64
	waveformR   []float64
	waveformIdx int

	// mixScratch is the stream callback's reusable float32 mix buffer.
	// It is only ever touched from within stream.Read, which oto calls
	// sequentially from a single goroutine, so it needs no lock of its
	// own. Grown on demand and never shrunk, so a steady callback size
	// (the common case) causes no further allocation after warm-up.
	mixScratch []float32
}

const finishedQueueSize = 1

const waveformSize = 128

// NewEngine creates an oto context at the given sample rate/channel count
// and starts a single player backed by this engine's stream.
func NewEngine(sampleRate, channels int) (*Engine, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channels, 2)
	if err != nil {
		return nil, err
	}
	<-ready

	e := &Engine{
		ctx:        ctx,
		sampleRate: sampleRate,
		volume:     0.8,
		metro:      metronome.New(sampleRate),
		waveformL:  make([]float64, waveformSize),
		waveformR:  make([]float64, waveformSize),
		finished:   make(chan struct{}, finishedQueueSize),
	}
	e.player = ctx.NewPlayer(&stream{engine: e})
	e.player.Play()
	return e, nil
}

// Metronome exposes the engine's metronome for control-thread configuration.
func (e *Engine) Metronome() *metronome.Metronome { return e.metro }

// Load replaces the audio being played, resetting position and transport
// state. Grounded on playback.py's load.
func (e *Engine) Load(audio dsp.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.audio = audio
	e.sampleRate = audio.SampleRate
	e.position = 0
	e.isPlaying = false
	e.isPaused = false
	e.metro.SetSampleRate(audio.SampleRate)
}

// Play starts (or resumes) playback, optionally seeking to startPos first.
func (e *Engine) Play(startPos *int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.audio.Frames() == 0 {
		return
	}
	if startPos != nil {
		e.position = clampInt(*startPos, 0, e.audio.Frames()-1)
	}
	e.isPlaying = true
	e.isPaused = false
}

// PlaySelection seeks to start and begins playback, used for auditioning a
// selection range without otherwise touching transport state.
func (e *Engine) PlaySelection(start int) {
	e.Play(&start)
}

// Pause stops advancing the read position without resetting it.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isPlaying = false
	e.isPaused = true
}

// Resume continues playback from the current position.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isPlaying = true
	e.isPaused = false
}

// Stop halts playback and rewinds to the start.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isPlaying = false
	e.isPaused = false
	e.position = 0
}

// Seek moves the read position, clamped to the loaded audio's bounds.
func (e *Engine) Seek(pos int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	max := e.audio.Frames() - 1
	if max < 0 {
		max = 0
	}
	e.position = clampInt(pos, 0, max)
}

// SetVolume clamps v to [0, 1] and applies it to subsequent output.
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = clampFloat(v, 0, 1)
}

// SetLoop configures the loop region; looping has no effect unless enabled.
func (e *Engine) SetLoop(start, end int, looping bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loopStart = start
	e.loopEnd = end
	e.looping = looping
	e.hasLoop = true
}

// FinishedCh returns the channel the stream callback signals on, once,
// when playback runs off the end of the loaded audio without looping.
// The control thread is expected to select on it (or drain it
// non-blockingly on a timer/tick) rather than the audio callback ever
// invoking control-thread code directly. Grounded on SPEC_FULL's
// "bounded channel instead of a GUI-thread signal from the audio
// callback" re-architecture of the original's on_playback_finished
// direct call.
func (e *Engine) FinishedCh() <-chan struct{} {
	return e.finished
}

// SetOutputDevice always returns ErrDeviceSelectionUnsupported; see the
// package doc and ErrDeviceSelectionUnsupported.
func (e *Engine) SetOutputDevice(_ int) error {
	return ErrDeviceSelectionUnsupported
}

// SuspendStream stops playback; kept for parity with the state machine
// this is ported from. oto/v2 has no stream-teardown primitive separate
// from Close, so this only flips transport state.
func (e *Engine) SuspendStream() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.isPlaying = false
}

// ResumeStream is the counterpart to SuspendStream.
func (e *Engine) ResumeStream() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.audio.Frames() > 0 {
		e.isPlaying = true
	}
}

// Position returns the current read position in frames.
func (e *Engine) Position() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// GetWaveform returns the most recent stereo samples for oscilloscope/VU
// rendering, oldest first. Grounded on the teacher's Engine.GetWaveform.
func (e *Engine) GetWaveform() (left, right []float64) {
	e.waveformMu.RLock()
	defer e.waveformMu.RUnlock()

	left = make([]float64, waveformSize)
	right = make([]float64, waveformSize)
	for i := 0; i < waveformSize; i++ {
		idx := (e.waveformIdx + i) % waveformSize
		left[i] = e.waveformL[idx]
		right[i] = e.waveformR[idx]
	}
	return left, right
}

// IsPlaying reports whether the transport is advancing.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isPlaying
}

// Close releases the underlying player.
func (e *Engine) Close() {
	e.mu.Lock()
	e.isPlaying = false
	e.mu.Unlock()
	if e.player != nil {
		e.player.Close()
	}
}

type stream struct {
	engine *Engine
}

// Read is the oto callback: it copies out the engine's state under lock,
// fills buf with int16 PCM for the requested frame count, advances
// position, mixes in the metronome, and handles loop/finish transitions.
// Nothing here is allowed to fail outward — per spec.md §7, any panic in
// the mixing path is recovered and the buffer zeroed instead of
// propagating — and nothing here allocates a whole-buffer copy: samples
// are indexed directly out of the loaded audio and the only scratch
// buffer is a reused field, not a fresh slice per call. Mirrors the
// teacher's audioStream.Read, generalized from its per-sample synthesis
// to per-sample indexing into a loaded buffer.
func (s *stream) Read(buf []byte) (n int, err error) {
	e := s.engine
	defer func() {
		if r := recover(); r != nil {
			for i := range buf {
				buf[i] = 0
			}
			n, err = len(buf), nil
		}
	}()

	e.mu.Lock()
	playing := e.isPlaying
	audio := e.audio
	pos := e.position
	volume := e.volume
	looping := e.looping
	hasLoop := e.hasLoop
	loopStart, loopEnd := e.loopStart, e.loopEnd
	e.mu.Unlock()

	frames := len(buf) / bytesPerFrame
	if !playing || audio.Frames() == 0 {
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	total := audio.Frames()
	end := pos + frames
	if end > total {
		end = total
	}
	valid := end - pos

	if valid <= 0 {
		for i := range buf {
			buf[i] = 0
		}
		if looping && hasLoop {
			e.mu.Lock()
			e.position = loopStart
			e.mu.Unlock()
		} else {
			e.mu.Lock()
			e.isPlaying = false
			e.mu.Unlock()
			select {
			case e.finished <- struct{}{}:
			default:
			}
		}
		return len(buf), nil
	}

	ch := audio.Channels
	mix := e.scratch(frames * 2)
	for i := 0; i < valid; i++ {
		idx := pos + i
		var l, r float32
		switch {
		case ch <= 1:
			v := audio.Samples[idx] * float32(volume)
			l, r = v, v
		default:
			base := idx * ch
			l = audio.Samples[base] * float32(volume)
			r = audio.Samples[base+1] * float32(volume)
		}
		mix[i*2] = l
		mix[i*2+1] = r
	}
	for i := valid * 2; i < frames*2; i++ {
		mix[i] = 0
	}

	e.metro.MixInto(mix, 2, pos, frames)

	e.waveformMu.Lock()
	for i := 0; i < frames; i++ {
		l := clampSample(mix[i*2])
		r := clampSample(mix[i*2+1])
		idx := i * 4
		buf[idx] = byte(l)
		buf[idx+1] = byte(l >> 8)
		buf[idx+2] = byte(r)
		buf[idx+3] = byte(r >> 8)

		e.waveformL[e.waveformIdx] = float64(mix[i*2])
		e.waveformR[e.waveformIdx] = float64(mix[i*2+1])
		e.waveformIdx = (e.waveformIdx + 1) % waveformSize
	}
	e.waveformMu.Unlock()

	newPos := pos + valid
	if looping && hasLoop && newPos >= loopEnd {
		newPos = loopStart
	}
	e.mu.Lock()
	e.position = newPos
	e.mu.Unlock()

	return len(buf), nil
}

// scratch returns a reusable float32 buffer of exactly length n, growing
// its backing array only the first time (or if) a larger callback size is
// requested. Only ever called from stream.Read, which oto drives from a
// single goroutine, so no lock is needed.
func (e *Engine) scratch(n int) []float32 {
	if cap(e.mixScratch) < n {
		e.mixScratch = make([]float32, n)
	}
	return e.mixScratch[:n]
}

func clampSample(v float32) int16 {
	f := v * 32767
	if f > 32767 {
		f = 32767
	} else if f < -32768 {
		f = -32768
	}
	return int16(f)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
