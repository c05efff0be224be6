package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/anthanhphan/go-object-store/internal/domain"
	"github.com/anthanhphan/go-object-store/internal/port"
	"github.com/anthanhphan/go-object-store/pkg/checksum"
	"github.com/anthanhphan/go-object-store/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// drainFragmentSize is how many bytes are read from the source per
// iteration of the drain loop. The memory gauge is consulted between
// fragments, so this also bounds how much can accumulate between two
// pressure checks.
const drainFragmentSize = 32 * 1024

// uploadService orchestrates drain, checksum, split and batched chunk
// persistence for one file.
type uploadService struct {
	core *StoreServiceImpl
}

// newUploadService creates the upload use-case service.
func newUploadService(core *StoreServiceImpl) *uploadService {
	return &uploadService{core: core}
}

// uploadFile performs the full upload workflow from stream to index entry.
func (s *uploadService) uploadFile(ctx context.Context, fileName string, reader io.Reader, chunkSize int, parallelism int) (*domain.FileMetadata, error) {
	if fileName == "" {
		return nil, domain.ErrEmptyFileName
	}
	if chunkSize <= 0 {
		chunkSize = s.core.defaultChunkSize()
	}
	if chunkSize > domain.MaxChunkSize {
		return nil, fmt.Errorf("chunk size %d: %w", chunkSize, domain.ErrChunkTooLarge)
	}

	logger.Infow("Upload started", "file_name", fileName, "chunk_size", chunkSize, "parallelism", parallelism)

	buf, err := s.drain(ctx, reader)
	if err != nil {
		logger.Errorw("Upload drain failed", "file_name", fileName, "error", err.Error())
		return nil, err
	}

	digest := checksum.SHA1Hex(buf)
	chunks := splitIntoChunks(buf, chunkSize)

	if err := s.writeChunks(ctx, fileName, chunks, parallelism); err != nil {
		logger.Errorw("Upload failed", "file_name", fileName, "error", err.Error())
		return nil, err
	}

	// A prior upload under the same name may have left chunks above the
	// new count; its metadata is read before being overwritten so the
	// stale slots can be blanked.
	previousChunks := s.previousChunkCount(ctx, fileName)

	meta := &domain.FileMetadata{
		FileName:    fileName,
		TotalChunks: len(chunks),
		ChunkSize:   chunkSize,
		TotalSize:   int64(len(buf)),
		Checksum:    digest,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.persistMetadata(ctx, meta); err != nil {
		logger.Errorw("Metadata persistence failed", "file_name", fileName, "error", err.Error())
		s.cleanupChunks(fileName, len(chunks))
		return nil, err
	}

	if previousChunks > len(chunks) {
		s.trimStaleChunks(ctx, fileName, len(chunks), previousChunks)
	}

	s.appendToFileIndex(ctx, fileName)

	logger.Infow("Upload completed", "file_name", fileName, "chunks", meta.TotalChunks, "size_bytes", meta.TotalSize)
	return meta, nil
}

// drain reads the source fully into memory, checking heap pressure and the
// object size ceiling between fragments. Full buffering keeps the checksum
// and split phases trivial; a streaming drain can replace this method
// without touching the rest of the workflow.
func (s *uploadService) drain(ctx context.Context, reader io.Reader) ([]byte, error) {
	maxSize := s.core.maxObjectSize()
	threshold := s.core.memoryPressureRatio()

	var buf bytes.Buffer
	fragment := make([]byte, drainFragmentSize)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if ratio := s.core.gauge.HeapUsageRatio(); ratio > threshold {
			return nil, fmt.Errorf("heap usage %.2f above %.2f: %w", ratio, threshold, port.ErrMemoryPressure)
		}

		n, readErr := io.ReadFull(reader, fragment)
		if n > 0 {
			if int64(buf.Len())+int64(n) > maxSize {
				return nil, fmt.Errorf("object larger than %d bytes: %w", maxSize, port.ErrObjectTooLarge)
			}
			buf.Write(fragment[:n])
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return buf.Bytes(), nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read error: %w", readErr)
		}
	}
}

// splitIntoChunks cuts the buffer into contiguous chunkSize slices. The
// slices alias buf; chunk writes never mutate them. Empty input yields no
// chunks.
func splitIntoChunks(buf []byte, chunkSize int) [][]byte {
	if len(buf) == 0 {
		return nil
	}

	total := (len(buf) + chunkSize - 1) / chunkSize
	chunks := make([][]byte, 0, total)
	for start := 0; start < len(buf); start += chunkSize {
		end := start + chunkSize
		if end > len(buf) {
			end = len(buf)
		}
		chunks = append(chunks, buf[start:end])
	}
	return chunks
}

// writeChunks persists all chunks in parallelism-bounded batches. On
// failure the already-written prefix is cleaned best-effort and the
// original write error is returned.
func (s *uploadService) writeChunks(ctx context.Context, fileName string, chunks [][]byte, parallelism int) error {
	err := resilience.RunBatches(ctx, len(chunks), parallelism, func(batchCtx context.Context, index int) error {
		chunk, err := domain.NewChunk(fileName, index, chunks[index])
		if err != nil {
			return err
		}
		return s.core.backend.SetBinary(batchCtx, buildChunkKey(chunk.FileName, chunk.Index), chunk.Data)
	})
	if err == nil {
		return nil
	}

	var indexed *resilience.IndexedError
	failedIndex := len(chunks)
	if errors.As(err, &indexed) {
		failedIndex = indexed.Index
	}
	s.cleanupChunks(fileName, failedIndex)

	return fmt.Errorf("chunk write failed for %q: %w", fileName, err)
}

// cleanupChunks best-effort blanks chunk slots [0, count) after a failed
// upload. Slots are overwritten with empty payloads rather than deleted:
// the capability contract has no delete operation, and a blank chunk can
// never be silently served — reassembly fails the checksum comparison.
// Errors here are logged only, so the original failure reaches the caller.
func (s *uploadService) cleanupChunks(fileName string, count int) {
	if count <= 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		logger.Infow("Cleanup started", "file_name", fileName, "chunks", count)
		for i := 0; i < count; i++ {
			if err := s.core.backend.SetBinary(ctx, buildChunkKey(fileName, i), nil); err != nil {
				logger.Warnw("Cleanup chunk overwrite failed", "file_name", fileName, "chunk_index", i, "error", err.Error())
			}
		}
		logger.Infow("Cleanup finished", "file_name", fileName, "chunks", count)
	}()
}

// previousChunkCount reads the chunk count of any metadata record already
// stored under the name. Zero means no usable prior record exists.
func (s *uploadService) previousChunkCount(ctx context.Context, fileName string) int {
	raw, err := s.core.backend.Get(ctx, buildMetadataKey(fileName))
	if err != nil {
		return 0
	}
	meta, err := domain.DecodeMetadata([]byte(raw))
	if err != nil || meta.TotalChunks < 0 {
		return 0
	}
	return meta.TotalChunks
}

// trimStaleChunks blanks chunk slots [from, to) left behind by a larger
// previous upload of the same name. The new metadata no longer references
// them, so failures here are logged and never fail the upload.
func (s *uploadService) trimStaleChunks(ctx context.Context, fileName string, from, to int) {
	logger.Infow("Trimming stale chunks", "file_name", fileName, "from", from, "to", to)
	for i := from; i < to; i++ {
		if err := s.core.backend.SetBinary(ctx, buildChunkKey(fileName, i), nil); err != nil {
			logger.Warnw("Stale chunk overwrite failed", "file_name", fileName, "chunk_index", i, "error", err.Error())
		}
	}
}

// persistMetadata encodes and writes the metadata record.
func (s *uploadService) persistMetadata(ctx context.Context, meta *domain.FileMetadata) error {
	data, err := meta.Encode()
	if err != nil {
		return err
	}
	return s.core.backend.Set(ctx, buildMetadataKey(meta.FileName), string(data))
}

// appendToFileIndex registers the name in the uploaded-files list. Index
// visibility is best-effort: the file is already fully downloadable, so a
// failed append is logged and swallowed.
func (s *uploadService) appendToFileIndex(ctx context.Context, fileName string) {
	if err := s.core.backend.AppendToList(ctx, fileIndexKey, fileName); err != nil {
		logger.Warnw("File index append failed", "file_name", fileName, "error", err.Error())
	}
}
