package ports

import (
	"context"
	"mime/multipart"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// BlogWithOwner is a listing entry: the blog plus its owner's attribution.
// Blogs whose owner falls outside the requested role category are dropped
// from the listing entirely, never returned with a zero owner.
type BlogWithOwner struct {
	domain.Blog
	Owner domain.UserSummary `json:"ownerInfo"`
}

// BlogService owns the blog write path and the role-filtered public listing.
type BlogService interface {
	// Create uploads the thumbnail first and persists the blog only after the
	// upload succeeds.
	Create(ctx context.Context, ownerID, content string, thumbnail *multipart.FileHeader) (*domain.Blog, error)
	// Update and Delete assume the caller already passed the ownership guard.
	Update(ctx context.Context, blogID, content string) (*domain.Blog, error)
	Delete(ctx context.Context, blogID string) error

	// List returns blogs newest-first, filtered by the owner's role category.
	List(ctx context.Context, category string) ([]BlogWithOwner, error)
}
