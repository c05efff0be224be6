package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-object-store/internal/domain"
	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/anthanhphan/go-object-store/pkg/checksum"
	"github.com/anthanhphan/go-object-store/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// downloadService reconstructs files from stored chunks and verifies
// content integrity before anything is returned.
type downloadService struct {
	core *StoreServiceImpl
}

// newDownloadService creates the download use-case service.
func newDownloadService(core *StoreServiceImpl) *downloadService {
	return &downloadService{core: core}
}

// downloadFile fetches metadata, reassembles all chunks in index order and
// returns the buffer only after the checksum matches.
func (s *downloadService) downloadFile(ctx context.Context, fileName string, parallelism int) ([]byte, error) {
	logger.Infow("Download started", "file_name", fileName, "parallelism", parallelism)

	meta, err := s.getFileMetadata(ctx, fileName)
	if err != nil {
		return nil, err
	}

	buf, err := s.fetchChunks(ctx, meta, parallelism)
	if err != nil {
		logger.Errorw("Download failed", "file_name", fileName, "error", err.Error())
		return nil, err
	}

	if digest := checksum.SHA1Hex(buf); digest != meta.Checksum {
		logger.Errorw("Download integrity failure", "file_name", fileName, "stored", meta.Checksum, "computed", digest)
		return nil, fmt.Errorf("file %q: %w", fileName, port.ErrChecksumMismatch)
	}

	logger.Infow("Download completed", "file_name", fileName, "chunks", meta.TotalChunks, "size_bytes", len(buf))
	return buf, nil
}

// getFileMetadata reads and validates the metadata record for a file.
func (s *downloadService) getFileMetadata(ctx context.Context, fileName string) (*domain.FileMetadata, error) {
	raw, err := s.core.backend.Get(ctx, buildMetadataKey(fileName))
	if err != nil {
		if errors.Is(err, port.ErrKeyNotFound) {
			return nil, fmt.Errorf("file %q: %w", fileName, port.ErrFileNotFound)
		}
		return nil, err
	}

	meta, err := domain.DecodeMetadata([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("file %q: %v: %w", fileName, err, port.ErrInvalidMetadata)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("file %q: %v: %w", fileName, err, port.ErrInvalidMetadata)
	}
	return meta, nil
}

// fetchChunks reads all chunks in parallelism-bounded batches and
// concatenates them in index order. Concurrent fetches complete in
// arbitrary order, so each result is slotted by its chunk index before
// concatenation.
func (s *downloadService) fetchChunks(ctx context.Context, meta *domain.FileMetadata, parallelism int) ([]byte, error) {
	chunks := make([][]byte, meta.TotalChunks)

	err := resilience.RunBatches(ctx, meta.TotalChunks, parallelism, func(batchCtx context.Context, index int) error {
		data, err := s.core.backend.GetBinary(batchCtx, buildChunkKey(meta.FileName, index))
		if err != nil {
			if errors.Is(err, port.ErrKeyNotFound) {
				return fmt.Errorf("chunk %d of %q: %w", index, meta.FileName, port.ErrChunkNotFound)
			}
			return fmt.Errorf("chunk %d of %q: %w", index, meta.FileName, err)
		}
		chunks[index] = data
		return nil
	})
	if err != nil {
		var indexed *resilience.IndexedError
		if errors.As(err, &indexed) {
			return nil, indexed.Err
		}
		return nil, err
	}

	buf := make([]byte, 0, meta.TotalSize)
	for _, data := range chunks {
		buf = append(buf, data...)
	}
	return buf, nil
}
