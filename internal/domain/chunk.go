package domain

import "errors"

const (
	// MaxChunkSize is the hard ceiling for a single chunk payload in bytes.
	// It must stay below the per-value limit of every supported backend
	// (Redis caps values at 512MB; Badger at ~1GB).
	MaxChunkSize = 16 * 1024 * 1024

	// DefaultChunkSize is used when the caller does not specify a split size.
	DefaultChunkSize = 4 * 1024 * 1024
)

var (
	ErrChunkTooLarge = errors.New("chunk size exceeds maximum")
	ErrEmptyFileName = errors.New("file name must not be empty")
)

// Chunk is one contiguous slice of a file's content, addressable as an
// independent backend key. Index is 0-based and contiguous within a file;
// the final chunk of a file may be shorter than the split size.
type Chunk struct {
	FileName string
	Index    int
	Data     []byte
}

// NewChunk validates the payload size and builds a chunk record.
func NewChunk(fileName string, index int, data []byte) (*Chunk, error) {
	if len(data) > MaxChunkSize {
		return nil, ErrChunkTooLarge
	}
	return &Chunk{FileName: fileName, Index: index, Data: data}, nil
}
