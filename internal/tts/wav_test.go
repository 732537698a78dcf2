package tts

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeWAV builds a minimal PCM WAV payload.
func makeWAV(sampleRate, channels, bitsPerSample int, dataBytes int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8

	buf := make([]byte, 0, 44+dataBytes)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+dataBytes))
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels*bitsPerSample/8))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(bitsPerSample))

	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataBytes))
	buf = append(buf, make([]byte, dataBytes)...)

	return buf
}

func TestWAVDuration(t *testing.T) {
	// 22050 Hz, mono, 16-bit: 44100 bytes per second.
	wav := makeWAV(22050, 1, 16, 44100*2)

	d, err := WAVDuration(wav)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, d, 1e-6)
}

func TestWAVDuration_NotWAV(t *testing.T) {
	_, err := WAVDuration([]byte("hello world, definitely not audio"))
	assert.ErrorIs(t, err, errNotWAV)

	_, err = WAVDuration(nil)
	assert.ErrorIs(t, err, errNotWAV)
}

func TestWAVDuration_MissingDataChunk(t *testing.T) {
	wav := makeWAV(22050, 1, 16, 0)
	// Chop off the data chunk header.
	wav = wav[:36]

	_, err := WAVDuration(wav)
	assert.Error(t, err)
}
