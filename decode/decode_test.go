package decode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glitchmaker/dsp"
)

func TestLoad_UnsupportedExtensionReturnsSentinelError(t *testing.T) {
	_, err := Load("clip.m4a")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeWAVBytes_RoundTripsThroughEncodeWAV(t *testing.T) {
	buf := dsp.NewBuffer(1000, 2, 44100)
	for i := range buf.Samples {
		buf.Samples[i] = 0.5
	}

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, EncodeWAV(f, buf))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	decoded, err := DecodeWAVBytes(data)
	require.NoError(t, err)

	assert.Equal(t, buf.Channels, decoded.Channels)
	assert.Equal(t, buf.SampleRate, decoded.SampleRate)
	assert.Equal(t, buf.Frames(), decoded.Frames())
	for i, s := range decoded.Samples {
		assert.InDelta(t, buf.Samples[i], s, 1e-3)
	}
}

func TestLoad_WAVFileFromDisk(t *testing.T) {
	buf := dsp.NewBuffer(500, 1, 22050)
	for i := range buf.Samples {
		buf.Samples[i] = -0.25
	}

	path := filepath.Join(t.TempDir(), "mono.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, EncodeWAV(f, buf))
	require.NoError(t, f.Close())

	decoded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Channels)
	assert.Equal(t, 22050, decoded.SampleRate)
	assert.Equal(t, 500, decoded.Frames())
}
