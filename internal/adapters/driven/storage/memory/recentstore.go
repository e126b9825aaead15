package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
)

// Ensure RecentStore implements the interface.
var _ driven.RecentStore = (*RecentStore)(nil)

// RecentStore is an in-memory implementation of driven.RecentStore.
type RecentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.RecentDocument
}

// NewRecentStore creates a new in-memory recent documents store.
func NewRecentStore() *RecentStore {
	return &RecentStore{
		docs: make(map[string]domain.RecentDocument),
	}
}

// Touch inserts or updates the entry for doc.Path.
func (s *RecentStore) Touch(_ context.Context, doc domain.RecentDocument) error {
	if doc.Path == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Path] = doc
	return nil
}

// Get returns the entry for path.
func (s *RecentStore) Get(_ context.Context, path string) (*domain.RecentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List returns entries newest first, at most limit when limit > 0.
func (s *RecentStore) List(_ context.Context, limit int) ([]domain.RecentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.RecentDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].OpenedAt.Equal(docs[j].OpenedAt) {
			return docs[i].Path < docs[j].Path
		}
		return docs[i].OpenedAt.After(docs[j].OpenedAt)
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Clear removes all entries.
func (s *RecentStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]domain.RecentDocument)
	return nil
}
