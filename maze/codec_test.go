package maze

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blob(t *testing.T, width, height, solvable int32, words []uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, blobHeader{width, height, solvable}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, words))
	return buf.Bytes()
}

func TestDecodeSmall(t *testing.T) {
	// 4x2 maze, 8 cells in one word. Cell i occupies bits [2i, 2i+1]:
	// bit 0 east wall, bit 1 south wall.
	var word uint32
	word |= 0b01 << 0  // (0,0) east wall
	word |= 0b10 << 2  // (0,1) south wall
	word |= 0b11 << 6  // (0,3) both
	word |= 0b01 << 14 // (1,3) east wall

	g, err := DecodeBytes(blob(t, 4, 2, 1, []uint32{word}))
	require.NoError(t, err)
	assert.Equal(t, 4, g.Width)
	assert.Equal(t, 2, g.Height)

	assert.True(t, g.Has(Position{Row: 0, Col: 0}, EastWall))
	assert.False(t, g.Has(Position{Row: 0, Col: 0}, SouthWall))
	assert.True(t, g.Has(Position{Row: 0, Col: 1}, SouthWall))
	assert.True(t, g.Has(Position{Row: 0, Col: 3}, EastWall))
	assert.True(t, g.Has(Position{Row: 0, Col: 3}, SouthWall))
	assert.True(t, g.Has(Position{Row: 1, Col: 3}, EastWall))
	assert.False(t, g.Has(Position{Row: 1, Col: 0}, EastWall))

	// Wall queries line up with the decoded bits.
	assert.False(t, g.CanMove(Position{Row: 0, Col: 0}, East))
	assert.False(t, g.CanMove(Position{Row: 0, Col: 1}, South))
	assert.True(t, g.CanMove(Position{Row: 0, Col: 1}, East))
}

func TestDecodeMultiWord(t *testing.T) {
	// 20 cells span two words; cell 16 is the first cell of word two.
	words := []uint32{0, 0b01}
	g, err := DecodeBytes(blob(t, 5, 4, 1, words))
	require.NoError(t, err)
	assert.True(t, g.Has(Position{Row: 3, Col: 1}, EastWall), "cell 16 east wall")
	assert.False(t, g.Has(Position{Row: 3, Col: 0}, EastWall))
}

func TestDecodeErrors(t *testing.T) {
	t.Run("short header", func(t *testing.T) {
		_, err := DecodeBytes([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrInvalidMaze)
	})

	t.Run("bad dimensions", func(t *testing.T) {
		_, err := DecodeBytes(blob(t, -3, 2, 0, nil))
		assert.ErrorIs(t, err, ErrInvalidMaze)

		_, err = DecodeBytes(blob(t, 0, 2, 0, nil))
		assert.ErrorIs(t, err, ErrInvalidMaze)
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := DecodeBytes(blob(t, 8, 8, 1, []uint32{0, 0}))
		assert.ErrorIs(t, err, ErrInvalidMaze)
	})

	t.Run("oversized", func(t *testing.T) {
		_, err := DecodeBytes(blob(t, 100000, 2, 0, nil))
		assert.ErrorIs(t, err, ErrInvalidMaze)
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := buildGrid(t, 7, 5)
	g.SetWalls(Position{Row: 0, Col: 0}, true, false)
	g.SetWalls(Position{Row: 2, Col: 3}, false, true)
	g.SetWalls(Position{Row: 4, Col: 6}, true, true)
	g.SetWalls(Position{Row: 3, Col: 1}, true, false)

	data, err := EncodeBytes(g, true)
	require.NoError(t, err)

	decoded, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, g.Width, decoded.Width)
	require.Equal(t, g.Height, decoded.Height)

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p := Position{Row: row, Col: col}
			assert.Equal(t, g.At(p)&(EastWall|SouthWall), decoded.At(p)&(EastWall|SouthWall),
				"walls differ at %v", p)
		}
	}
}

func TestDecodeIgnoresSolvableFlag(t *testing.T) {
	g1, err := DecodeBytes(blob(t, 4, 4, 0, []uint32{0}))
	require.NoError(t, err)
	g2, err := DecodeBytes(blob(t, 4, 4, 1, []uint32{0}))
	require.NoError(t, err)
	assert.Equal(t, g1.At(Position{}), g2.At(Position{}))
}
