package tts

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var errNotWAV = errors.New("not a RIFF/WAVE file")

// WAVDuration computes the playback duration in seconds from a WAV payload
// by walking its chunks. Returns 0 with an error for malformed input; the
// caller treats duration as optional metadata.
func WAVDuration(data []byte) (float64, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return 0, errNotWAV
	}

	var (
		byteRate uint32
		dataSize uint32
		haveFmt  bool
		haveData bool
	)

	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		body := offset + 8

		switch chunkID {
		case "fmt ":
			if body+16 > len(data) {
				return 0, fmt.Errorf("truncated fmt chunk")
			}
			byteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
			haveFmt = true
		case "data":
			dataSize = chunkSize
			haveData = true
		}

		if haveFmt && haveData {
			break
		}

		// Chunks are word-aligned.
		offset = body + int(chunkSize)
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if !haveFmt || !haveData || byteRate == 0 {
		return 0, fmt.Errorf("missing fmt or data chunk")
	}

	return float64(dataSize) / float64(byteRate), nil
}
