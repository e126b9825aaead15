package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/lasso/internal/core/domain"
	"github.com/custodia-labs/lasso/internal/core/ports/driven"
)

// recentStore implements driven.RecentStore.
type recentStore struct {
	store *Store
}

var _ driven.RecentStore = (*recentStore)(nil)

// Touch inserts or updates the entry for doc.Path.
func (s *recentStore) Touch(ctx context.Context, doc domain.RecentDocument) error {
	if doc.Path == "" {
		return domain.ErrInvalidInput
	}
	if doc.OpenedAt.IsZero() {
		doc.OpenedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO recent_documents (path, page_count, last_page, zoom, opened_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			page_count = excluded.page_count,
			last_page = excluded.last_page,
			zoom = excluded.zoom,
			opened_at = excluded.opened_at
	`, doc.Path, doc.PageCount, doc.LastPage, doc.Zoom, doc.OpenedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving recent document: %w", err)
	}
	return nil
}

// Get returns the entry for path.
func (s *recentStore) Get(ctx context.Context, path string) (*domain.RecentDocument, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT path, page_count, last_page, zoom, opened_at
		FROM recent_documents WHERE path = ?
	`, path)

	doc, err := scanRecent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning recent document: %w", err)
	}
	return doc, nil
}

// List returns entries newest first, at most limit when limit > 0.
func (s *recentStore) List(ctx context.Context, limit int) ([]domain.RecentDocument, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, page_count, last_page, zoom, opened_at
		FROM recent_documents
		ORDER BY opened_at DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.RecentDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanRecent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recent document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent documents: %w", err)
	}
	return docs, nil
}

// Clear removes all entries.
func (s *recentStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM recent_documents"); err != nil {
		return fmt.Errorf("clearing recent documents: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecent(row scanner) (*domain.RecentDocument, error) {
	var doc domain.RecentDocument
	var openedAt int64
	if err := row.Scan(&doc.Path, &doc.PageCount, &doc.LastPage, &doc.Zoom, &openedAt); err != nil {
		return nil, err
	}
	doc.OpenedAt = time.Unix(0, openedAt)
	return &doc, nil
}
