package service

import (
	"context"
	"io"

	"github.com/anthanhphan/go-object-store/internal/config"
	"github.com/anthanhphan/go-object-store/internal/domain"
	"github.com/anthanhphan/go-object-store/internal/port"
)

// StoreServiceImpl is the facade that wires use-case services for object
// store operations. The backend and memory gauge are injected explicitly;
// there is no ambient registry.
type StoreServiceImpl struct {
	cfg     *config.Config
	backend port.KeyValueStore
	gauge   port.MemoryGauge

	uploadUseCase   *uploadService
	downloadUseCase *downloadService
	listUseCase     *listService
}

// Ensure StoreServiceImpl implements port.ObjectService.
var _ port.ObjectService = (*StoreServiceImpl)(nil)

// NewStoreService builds the object store facade and all use-case services.
func NewStoreService(cfg *config.Config, backend port.KeyValueStore, gauge port.MemoryGauge) *StoreServiceImpl {
	svc := &StoreServiceImpl{
		cfg:     cfg,
		backend: backend,
		gauge:   gauge,
	}

	svc.uploadUseCase = newUploadService(svc)
	svc.downloadUseCase = newDownloadService(svc)
	svc.listUseCase = newListService(svc)

	return svc
}

// Upload delegates to the upload use-case service.
func (s *StoreServiceImpl) Upload(ctx context.Context, fileName string, reader io.Reader, chunkSize int, parallelism int) (*domain.FileMetadata, error) {
	return s.uploadUseCase.uploadFile(ctx, fileName, reader, chunkSize, parallelism)
}

// Download delegates to the download use-case service.
func (s *StoreServiceImpl) Download(ctx context.Context, fileName string, parallelism int) ([]byte, error) {
	return s.downloadUseCase.downloadFile(ctx, fileName, parallelism)
}

// GetMetadata delegates metadata reads to the download use-case service.
func (s *StoreServiceImpl) GetMetadata(ctx context.Context, fileName string) (*domain.FileMetadata, error) {
	return s.downloadUseCase.getFileMetadata(ctx, fileName)
}

// ListFiles delegates to the listing use-case service.
func (s *StoreServiceImpl) ListFiles(ctx context.Context) ([]string, error) {
	return s.listUseCase.listUploadedFiles(ctx)
}

// defaultChunkSize resolves the configured split size with fallback.
func (s *StoreServiceImpl) defaultChunkSize() int {
	if s.cfg.App.ChunkSize > 0 {
		return s.cfg.App.ChunkSize
	}
	return domain.DefaultChunkSize
}

// maxObjectSize returns the configured object size ceiling with fallback.
func (s *StoreServiceImpl) maxObjectSize() int64 {
	if s.cfg.App.MaxObjectSize > 0 {
		return s.cfg.App.MaxObjectSize
	}
	return config.DefaultMaxObjectSize
}

// memoryPressureRatio returns the heap-usage abort threshold with fallback.
func (s *StoreServiceImpl) memoryPressureRatio() float64 {
	if s.cfg.App.MemoryPressureRatio > 0 {
		return s.cfg.App.MemoryPressureRatio
	}
	return config.DefaultMemoryPressureRatio
}
