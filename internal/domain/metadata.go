package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChecksumHexLen is the length of a SHA-1 digest in hex characters.
const ChecksumHexLen = 40

// FileMetadata describes one uploaded file. The record is immutable once
// written; re-uploading the same name overwrites it (last-writer-wins).
type FileMetadata struct {
	FileName    string    `json:"file_name"`
	TotalChunks int       `json:"total_chunks"`
	ChunkSize   int       `json:"chunk_size"`
	TotalSize   int64     `json:"total_size"`
	Checksum    string    `json:"checksum"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks structural sanity of a decoded record. TotalChunks of zero
// is legal: empty files store no chunks but keep a verifiable checksum.
func (m *FileMetadata) Validate() error {
	if m.TotalChunks < 0 {
		return fmt.Errorf("invalid total_chunks %d", m.TotalChunks)
	}
	if m.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk_size %d", m.ChunkSize)
	}
	if m.TotalSize < 0 {
		return fmt.Errorf("invalid total_size %d", m.TotalSize)
	}
	// The chunk count must agree with the stored size: a corrupted
	// total_size would otherwise drive the download path's allocation.
	expectedChunks := m.TotalSize / int64(m.ChunkSize)
	if m.TotalSize%int64(m.ChunkSize) != 0 {
		expectedChunks++
	}
	if int64(m.TotalChunks) != expectedChunks {
		return fmt.Errorf("total_chunks %d inconsistent with total_size %d at chunk_size %d", m.TotalChunks, m.TotalSize, m.ChunkSize)
	}
	if len(m.Checksum) != ChecksumHexLen {
		return fmt.Errorf("invalid checksum length %d", len(m.Checksum))
	}
	return nil
}

// Encode serializes the record for the metadata key.
func (m *FileMetadata) Encode() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

// DecodeMetadata parses a stored metadata record.
func DecodeMetadata(data []byte) (*FileMetadata, error) {
	var meta FileMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &meta, nil
}
