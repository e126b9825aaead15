package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
	"github.com/custodia-labs/lasso/internal/core/ports/driving"
)

// Ensure RecentService implements the interface.
var _ driving.RecentService = (*RecentService)(nil)

// RecentService tracks recently opened documents.
type RecentService struct {
	store driven.RecentStore
	now   func() time.Time
}

// NewRecentService creates a new recent documents service.
func NewRecentService(store driven.RecentStore) *RecentService {
	return &RecentService{store: store, now: time.Now}
}

// Record remembers that a document was viewed at page and zoom.
func (s *RecentService) Record(ctx context.Context, info domain.DocumentInfo, page int, zoom float64) error {
	if info.Path == "" {
		return fmt.Errorf("record recent document: %w", domain.ErrInvalidInput)
	}
	entry := domain.RecentDocument{
		Path:      info.Path,
		PageCount: info.PageCount,
		LastPage:  page,
		Zoom:      zoom,
		OpenedAt:  s.now(),
	}
	if err := s.store.Touch(ctx, entry); err != nil {
		return fmt.Errorf("record recent document: %w", err)
	}
	return nil
}

// Last returns the entry for path, or domain.ErrNotFound.
func (s *RecentService) Last(ctx context.Context, path string) (*domain.RecentDocument, error) {
	return s.store.Get(ctx, path)
}

// List returns recently opened documents, newest first.
func (s *RecentService) List(ctx context.Context, limit int) ([]domain.RecentDocument, error) {
	docs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent documents: %w", err)
	}
	return docs, nil
}

// Clear forgets all recent documents.
func (s *RecentService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
