package app

import (
	"fmt"
	"os"
	"time"

	"glitchmaker/decode"
	"glitchmaker/playback"
)

// Render loads inputPath (a .gspi project or a raw audio file), replays its
// ledger, and writes the resulting mix to outPath as 16-bit PCM WAV —
// the non-interactive counterpart to the original's "export" action.
func Render(inputPath, outPath string) error {
	session, err := Load(inputPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("app: create %s: %w", outPath, err)
	}
	defer f.Close()

	return decode.EncodeWAV(f, session.Ledger.CurrentAudio)
}

// Play loads inputPath and plays it through the default audio device until
// it finishes, blocking the calling goroutine — a headless counterpart to
// the TUI's space-bar transport.
func Play(inputPath string) error {
	session, err := Load(inputPath)
	if err != nil {
		return err
	}

	engine, err := playback.NewEngine(session.Ledger.SampleRate, 2)
	if err != nil {
		return fmt.Errorf("app: open audio device: %w", err)
	}
	defer engine.Close()

	engine.Load(session.Ledger.CurrentAudio)
	engine.Play(nil)

	select {
	case <-engine.FinishedCh():
	case <-timeoutFor(session.Ledger.CurrentAudio.Frames(), session.Ledger.SampleRate):
	}
	return nil
}

// timeoutFor is a safety-net deadline in case the stream never signals
// FinishedCh (e.g. a zero-length render).
func timeoutFor(frames, sampleRate int) <-chan time.Time {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	secs := float64(frames)/float64(sampleRate) + 2
	return time.After(time.Duration(secs * float64(time.Second)))
}
