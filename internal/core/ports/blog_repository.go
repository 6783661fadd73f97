package ports

import (
	"context"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// BlogRepository is the persistence boundary for blog documents. All listings
// are returned newest-first.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	UpdateContent(ctx context.Context, id, content string) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error

	ListAll(ctx context.Context) ([]domain.Blog, error)
	ListByOwners(ctx context.Context, ownerIDs []string) ([]domain.Blog, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Blog, error)

	// DeleteByOwner removes every blog owned by the user and reports how many
	// documents were removed.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
