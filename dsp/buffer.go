// Package dsp implements the effects kernel: a compile-time registry of
// pure, parametric audio effects operating on interleaved float32 buffers.
package dsp

import "math"

// Buffer is a finite sequence of 32-bit float samples, interleaved
// frames×channels, carrying its own sample rate. Buffers are treated as
// immutable once handed to a caller; effects always return a fresh one.
type Buffer struct {
	Samples    []float32
	Channels   int
	SampleRate int
}

// NewBuffer allocates a zeroed buffer for the given frame/channel count.
func NewBuffer(frames, channels, sampleRate int) Buffer {
	if frames < 0 {
		frames = 0
	}
	return Buffer{
		Samples:    make([]float32, frames*channels),
		Channels:   channels,
		SampleRate: sampleRate,
	}
}

// Frames returns the number of sample frames in the buffer.
func (b Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Clone returns a deep copy; the kernel never mutates the input in place.
func (b Buffer) Clone() Buffer {
	out := Buffer{
		Samples:    make([]float32, len(b.Samples)),
		Channels:   b.Channels,
		SampleRate: b.SampleRate,
	}
	copy(out.Samples, b.Samples)
	return out
}

// Slice returns a fresh buffer holding frames [start, end).
func (b Buffer) Slice(start, end int) Buffer {
	if start < 0 {
		start = 0
	}
	if end > b.Frames() {
		end = b.Frames()
	}
	if end < start {
		end = start
	}
	ch := b.Channels
	out := Buffer{
		Samples:    make([]float32, (end-start)*ch),
		Channels:   ch,
		SampleRate: b.SampleRate,
	}
	copy(out.Samples, b.Samples[start*ch:end*ch])
	return out
}

// Concat concatenates buffers of matching channel count/sample rate.
func Concat(parts ...Buffer) Buffer {
	if len(parts) == 0 {
		return Buffer{}
	}
	ch := parts[0].Channels
	sr := parts[0].SampleRate
	total := 0
	for _, p := range parts {
		total += len(p.Samples)
	}
	out := Buffer{Samples: make([]float32, 0, total), Channels: ch, SampleRate: sr}
	for _, p := range parts {
		out.Samples = append(out.Samples, p.Samples...)
	}
	return out
}

// ClampInPlace clamps every sample to [-1, 1] and replaces NaN/Inf with 0.
// Every effect calls this before returning, per the no-NaN/no-Inf contract.
func (b Buffer) ClampInPlace() Buffer {
	for i, s := range b.Samples {
		if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
			b.Samples[i] = 0
			continue
		}
		if s > 1 {
			b.Samples[i] = 1
		} else if s < -1 {
			b.Samples[i] = -1
		}
	}
	return b
}

// Channel returns the samples of one channel as a flat slice (new allocation).
func (b Buffer) Channel(ch int) []float32 {
	n := b.Frames()
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = b.Samples[i*b.Channels+ch]
	}
	return out
}

// SetChannel writes a flat per-channel slice back into the interleaved buffer.
func (b Buffer) SetChannel(ch int, data []float32) {
	n := b.Frames()
	for i := 0; i < n && i < len(data); i++ {
		b.Samples[i*b.Channels+ch] = data[i]
	}
}

// ToStereo coerces a buffer to exactly 2 channels: mono is duplicated,
// >2 channels truncated to the first two.
func (b Buffer) ToStereo() Buffer {
	if b.Channels == 2 {
		return b.Clone()
	}
	n := b.Frames()
	out := NewBuffer(n, 2, b.SampleRate)
	switch {
	case b.Channels == 1:
		for i := 0; i < n; i++ {
			v := b.Samples[i]
			out.Samples[i*2] = v
			out.Samples[i*2+1] = v
		}
	case b.Channels > 2:
		for i := 0; i < n; i++ {
			out.Samples[i*2] = b.Samples[i*b.Channels]
			out.Samples[i*2+1] = b.Samples[i*b.Channels+1]
		}
	default:
		return out
	}
	return out
}

// Peak returns the maximum absolute sample value.
func (b Buffer) Peak() float64 {
	var peak float64
	for _, s := range b.Samples {
		v := math.Abs(float64(s))
		if v > peak {
			peak = v
		}
	}
	return peak
}

// RMS returns the root-mean-square level across all channels.
func (b Buffer) RMS() float64 {
	if len(b.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range b.Samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(b.Samples)))
}
