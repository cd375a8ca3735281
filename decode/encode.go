package decode

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"glitchmaker/dsp"
)

// EncodeWAV writes buf to w as 16-bit PCM WAV, the format project.go
// archives clips in (mirroring the original's sf.write(..., subtype="PCM_16")).
func EncodeWAV(w io.WriteSeeker, buf dsp.Buffer) error {
	enc := wav.NewEncoder(w, buf.SampleRate, 16, buf.Channels, 1)
	intData := make([]int, len(buf.Samples))
	for i, s := range buf.Samples {
		v := int(s * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		intData[i] = v
	}
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: buf.Channels, SampleRate: buf.SampleRate},
		Data:           intData,
		SourceBitDepth: 16,
	}
	if err := enc.Write(ib); err != nil {
		return err
	}
	return enc.Close()
}
