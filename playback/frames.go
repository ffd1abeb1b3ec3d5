package playback

import (
	"bytes"
	"encoding/binary"

	"github.com/beka-birhanu/vinom-solver/maze"
)

// Record types of the playback stream.
const (
	StepRecordType = 10
	PathRecordType = 11
)

// encodeStepFrame packs one animation step: step sequence number followed
// by the phase token, little-endian like the maze wire format.
func encodeStepFrame(seq uint32, phase byte) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint32(buf, seq)
	buf[4] = phase
	return buf
}

// encodePathFrame packs the final solution path: cell count followed by
// row,col int32 pairs in marking order.
func encodePathFrame(path []maze.Position) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(path)))
	for _, p := range path {
		_ = binary.Write(&buf, binary.LittleEndian, int32(p.Row))
		_ = binary.Write(&buf, binary.LittleEndian, int32(p.Col))
	}
	return buf.Bytes()
}
