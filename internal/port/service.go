package port

import (
	"context"
	"errors"
	"io"

	"github.com/anthanhphan/go-object-store/internal/domain"
)

var (
	// ErrFileNotFound means no metadata record exists for the name.
	ErrFileNotFound = errors.New("file not found")

	// ErrChunkNotFound means metadata references a chunk the backend lacks.
	ErrChunkNotFound = errors.New("chunk not found")

	// ErrInvalidMetadata means the stored metadata record is malformed.
	ErrInvalidMetadata = errors.New("invalid file metadata")

	// ErrChecksumMismatch means reassembled content failed integrity
	// verification. Distinct from not-found so callers can tell "doesn't
	// exist" from "exists but corrupted".
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrMemoryPressure means an upload was aborted by admission control
	// before completion. Retryable.
	ErrMemoryPressure = errors.New("memory pressure threshold exceeded")

	// ErrObjectTooLarge means the drained upload exceeded the configured
	// maximum object size.
	ErrObjectTooLarge = errors.New("object exceeds maximum size")
)

// ObjectService defines the chunked object store operations.
type ObjectService interface {
	// Upload drains reader fully, splits it into chunkSize chunks and
	// persists them with at most parallelism writes in flight. A
	// chunkSize of zero or less takes the configured default;
	// parallelism of one or less runs sequentially.
	Upload(ctx context.Context, fileName string, reader io.Reader, chunkSize int, parallelism int) (*domain.FileMetadata, error)

	// Download reassembles and integrity-verifies a previously uploaded
	// file, fetching chunks with at most parallelism reads in flight.
	Download(ctx context.Context, fileName string, parallelism int) ([]byte, error)

	// GetMetadata retrieves the metadata record for a file.
	GetMetadata(ctx context.Context, fileName string) (*domain.FileMetadata, error)

	// ListFiles enumerates the names of all uploaded files.
	ListFiles(ctx context.Context) ([]string, error)
}
