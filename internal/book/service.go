package book

import (
	"context"
	"fmt"
	"log/slog"

	"bookservice/internal/logging"
)

// ListParams is the free-form form of ListQuery, as received from callers
// that pass user input straight through.
type ListParams struct {
	Search string
	SortBy string
	Desc   bool
}

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new book service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create adds a book to the catalog.
func (s *Service) Create(ctx context.Context, title, author string) (Book, error) {
	log := logging.FromContext(ctx, s.logger)

	b, err := s.repo.Create(ctx, title, author)
	if err != nil {
		log.Warn("create book rejected", "error", err)
		return Book{}, fmt.Errorf("create book: %w", err)
	}

	log.Info("book created", "id", b.ID.String(), "title", b.Title, "author", b.Author)
	return b, nil
}

// Get returns a book by its id. The bool is false when no such book exists.
func (s *Service) Get(ctx context.Context, id string) (Book, bool, error) {
	b, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, false, fmt.Errorf("get book %q: %w", id, err)
	}
	logging.FromContext(ctx, s.logger).Debug("book lookup", "id", id, "found", ok)
	return b, ok, nil
}

// List returns the books matching p. The sort field is checked before the
// repository is consulted.
func (s *Service) List(ctx context.Context, p ListParams) ([]Book, error) {
	log := logging.FromContext(ctx, s.logger)

	field, err := ParseSortField(p.SortBy)
	if err != nil {
		log.Warn("list books rejected", "error", err)
		return nil, fmt.Errorf("list books: %w", err)
	}

	books, err := s.repo.List(ctx, ListQuery{Search: p.Search, SortBy: field, Desc: p.Desc})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	log.Debug("books listed", "search", p.Search, "sort_by", p.SortBy, "desc", p.Desc, "count", len(books))
	return books, nil
}

// Delete removes a book and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete book %q: %w", id, err)
	}
	logging.FromContext(ctx, s.logger).Info("book delete", "id", id, "deleted", deleted)
	return deleted, nil
}
