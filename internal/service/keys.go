package service

import "fmt"

// Persisted key layout. This is a stable contract: existing stores must
// stay readable across releases.
const (
	chunkKeyPrefix = "chunk:"
	metaKeyPrefix  = "meta:"
	fileIndexKey   = "uploaded_files"
)

// buildChunkKey maps a file name and chunk index to its backend key.
func buildChunkKey(fileName string, index int) string {
	return fmt.Sprintf("%s%s:%d", chunkKeyPrefix, fileName, index)
}

// buildMetadataKey returns the metadata key used for a file.
func buildMetadataKey(fileName string) string {
	return metaKeyPrefix + fileName
}
