package services

import (
	"context"
	"fmt"

	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driven"
	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService provides direct reads against the store.
type DocumentService struct {
	store driven.DocumentStore
}

// NewDocumentService creates a document service.
func NewDocumentService(store driven.DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

// Get returns the full document by id, or domain.ErrNotFound.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting document %d: %w", id, err)
	}
	return doc, nil
}

// CountByType returns document counts keyed by doc type.
func (s *DocumentService) CountByType(ctx context.Context) (map[domain.DocType]int, error) {
	counts, err := s.store.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting documents: %w", err)
	}
	return counts, nil
}
