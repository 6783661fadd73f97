package ports

import (
	"context"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// CommentService owns comment creation and owner-gated deletion.
type CommentService interface {
	// Create attaches a comment to an existing blog.
	Create(ctx context.Context, authorID, blogID, content string) (*domain.Comment, error)
	// Delete removes the comment when the requester owns it.
	Delete(ctx context.Context, commentID, requesterID string) error
}
