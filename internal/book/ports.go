package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=book

// Repository defines the contract for book storage.
type Repository interface {
	Create(ctx context.Context, title, author string) (Book, error)
	Get(ctx context.Context, id string) (Book, bool, error)
	List(ctx context.Context, q ListQuery) ([]Book, error)
	Delete(ctx context.Context, id string) (bool, error)
}
