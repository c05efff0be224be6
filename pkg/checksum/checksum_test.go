package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA1Hex_KnownVectors(t *testing.T) {
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", SHA1Hex(nil))
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", SHA1Hex([]byte{}))
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", SHA1Hex([]byte("abc")))
	assert.Len(t, SHA1Hex([]byte("anything")), HexLen)
}

func TestSHA1Hex_Deterministic(t *testing.T) {
	data := []byte("the same logical bytes")
	assert.Equal(t, SHA1Hex(data), SHA1Hex(data))
}

func TestSHA1Hex_SubViewOfSharedBacking(t *testing.T) {
	// A window into a larger backing array must digest exactly its own
	// bytes, never the capacity beyond its length.
	backing := make([]byte, 0, 4096)
	backing = append(backing, []byte("prefix-abc-suffix")...)
	view := backing[7:10] // "abc"

	assert.Equal(t, SHA1Hex([]byte("abc")), SHA1Hex(view))

	standalone := []byte("abc")
	assert.Equal(t, SHA1Hex(standalone), SHA1Hex(view))
}
