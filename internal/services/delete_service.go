package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ksjang99-lgtm/langchain-rag/internal/core"
	"github.com/ksjang99-lgtm/langchain-rag/internal/models"
)

// DeleteStore is the slice of persistence the deletion service needs.
type DeleteStore interface {
	ListPageImagePaths(ctx context.Context, docID string) ([]string, error)
	DeleteChunksByDocument(ctx context.Context, docID string) error
	DeletePagesByDocument(ctx context.Context, docID string) error
	DeleteDocument(ctx context.Context, docID string) error
}

// DeleteService removes a document, its pages and chunks, and its stored
// page images. Storage cleanup is best-effort; the metadata deletes run as
// three separate statements, so a mid-sequence failure is reported through
// the result rather than rolled back.
type DeleteService struct {
	store DeleteStore
	obj   core.ObjectClient
	log   zerolog.Logger
}

func NewDeleteService(store DeleteStore, obj core.ObjectClient, log zerolog.Logger) *DeleteService {
	return &DeleteService{store: store, obj: obj, log: log}
}

func (s *DeleteService) DeleteDocument(ctx context.Context, docID string) *models.DeleteResult {
	result := &models.DeleteResult{StorageFailed: []string{}}

	paths, err := s.store.ListPageImagePaths(ctx, docID)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if len(paths) > 0 {
		deleted, failed := s.obj.DeleteFiles(ctx, paths)
		result.StorageDeleted = deleted
		if failed != nil {
			result.StorageFailed = failed
		}
	}

	if err := s.store.DeleteChunksByDocument(ctx, docID); err != nil {
		result.Error = err.Error()
		return result
	}
	if err := s.store.DeletePagesByDocument(ctx, docID); err != nil {
		result.Error = err.Error()
		return result
	}
	if err := s.store.DeleteDocument(ctx, docID); err != nil {
		result.Error = err.Error()
		return result
	}

	result.OK = true
	s.log.Info().Str("doc_id", docID).Int("storage_deleted", result.StorageDeleted).
		Int("storage_failed", len(result.StorageFailed)).Msg("document deleted")
	return result
}
