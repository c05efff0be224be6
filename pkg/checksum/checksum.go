// Package checksum provides the content digest used for end-to-end
// integrity verification of stored objects.
package checksum

import (
	"crypto/sha1"
	"encoding/hex"
)

// HexLen is the length of a digest in hex characters.
const HexLen = sha1.Size * 2

// SHA1Hex returns the SHA-1 digest of data as a lowercase hex string.
// Only the logical bytes of the slice are hashed: a sub-slice of a larger
// shared backing array digests exactly its own window, never bytes beyond
// its length.
func SHA1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
