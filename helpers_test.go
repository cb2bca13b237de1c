package musictag

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subframe7536/music-tag-native/internal/container"
)

// mpegFrame returns one MPEG1 Layer III frame: 128 kbps, 44100 Hz,
// stereo, zeroed payload.
func mpegFrame() []byte {
	frame := make([]byte, 417)
	frame[0] = 0xFF
	frame[1] = 0xFB
	frame[2] = 0x90
	return frame
}

// mp3Buffer builds an MP3 buffer carrying an ID3v2 tag with the given
// items.
func mp3Buffer(t *testing.T, items map[string]string) []byte {
	t.Helper()
	tag := container.NewTag(container.TagID3v2)
	for k, v := range items {
		tag.Set(k, v)
	}
	f := container.NewFile(container.FormatMP3, container.Properties{})
	f.AddTag(tag)

	b, err := container.Encode(f, mpegFrame())
	require.NoError(t, err)
	return b
}

// flacBase builds a tagless FLAC buffer: magic, STREAMINFO, fake audio.
func flacBase(sampleRate, channels, bits int, totalSamples uint64) []byte {
	var b []byte
	b = append(b, "fLaC"...)
	b = append(b, 0x80, 0, 0, 34)

	info := make([]byte, 34)
	packed := uint64(sampleRate)<<44 |
		uint64(channels-1)<<41 |
		uint64(bits-1)<<36 |
		totalSamples
	for i := 0; i < 8; i++ {
		info[10+i] = byte(packed >> (8 * (7 - i)))
	}
	b = append(b, info...)
	return append(b, 0xAA, 0xBB)
}

// flacBuffer builds a FLAC buffer carrying a Vorbis tag.
func flacBuffer(t *testing.T, items map[string]string) []byte {
	t.Helper()
	base := flacBase(44100, 2, 16, 441000)

	f, err := container.Probe(base)
	require.NoError(t, err)
	tag := container.NewTag(container.TagVorbis)
	for k, v := range items {
		tag.Set(k, v)
	}
	f.AddTag(tag)

	b, err := container.Encode(f, base)
	require.NoError(t, err)
	return b
}

// wavBase builds a tagless RIFF/WAVE buffer.
func wavBase(sampleRate, channels, bits, dataSize int) []byte {
	byteRate := sampleRate * channels * bits / 8

	var b []byte
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = append(b, "WAVE"...)

	b = append(b, "fmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, uint16(channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(byteRate))
	b = binary.LittleEndian.AppendUint16(b, uint16(channels*bits/8))
	b = binary.LittleEndian.AppendUint16(b, uint16(bits))

	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(dataSize))
	b = append(b, make([]byte, dataSize)...)

	binary.LittleEndian.PutUint32(b[4:8], uint32(len(b)-8))
	return b
}

// wavBuffer builds a WAV buffer carrying a RIFF INFO tag.
func wavBuffer(t *testing.T, items map[string]string) []byte {
	t.Helper()
	base := wavBase(44100, 2, 16, 1000)

	f, err := container.Probe(base)
	require.NoError(t, err)
	tag := container.NewTag(container.TagRIFFInfo)
	for k, v := range items {
		tag.Set(k, v)
	}
	f.AddTag(tag)

	b, err := container.Encode(f, base)
	require.NoError(t, err)
	return b
}

// loadBuffer loads b into a fresh session and registers disposal.
func loadBuffer(t *testing.T, b []byte) *Session {
	t.Helper()
	s := New()
	require.NoError(t, s.LoadBuffer(b))
	t.Cleanup(s.Dispose)
	return s
}
