package service

import "context"

// listService enumerates the file index.
type listService struct {
	core *StoreServiceImpl
}

// newListService creates the listing use-case service.
func newListService(core *StoreServiceImpl) *listService {
	return &listService{core: core}
}

// listUploadedFiles returns all names in the uploaded-files index. A name
// can appear here while its metadata is absent (partial failure); callers
// see that as a not-found on download, not a listing error.
func (s *listService) listUploadedFiles(ctx context.Context) ([]string, error) {
	return s.core.backend.GetFullList(ctx, fileIndexKey)
}
