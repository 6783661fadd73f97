package ports

import (
	"context"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// CommentRepository is the persistence boundary for comment documents.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error

	// ListByBlogIDs returns the comments of all given blogs, oldest first.
	ListByBlogIDs(ctx context.Context, blogIDs []string) ([]domain.Comment, error)

	// Cascade helpers; each reports the number of documents removed.
	DeleteByBlogIDs(ctx context.Context, blogIDs []string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
