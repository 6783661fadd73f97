package ports

import (
	"context"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// CascadeResult reports what a cascading user deletion removed.
type CascadeResult struct {
	BlogsDeleted    int64 `json:"blogsDeleted"`
	CommentsDeleted int64 `json:"commentsDeleted"`
}

// AdminService covers the dashboard operations: role changes and cascading
// deletions.
type AdminService interface {
	// ChangeRole validates the assignment against the position-sign rules
	// before persisting it.
	ChangeRole(ctx context.Context, targetUserID string, role domain.Role) (*domain.User, error)
	// DeleteUser cascades in dependency order: comments, then blogs, then the
	// user itself.
	DeleteUser(ctx context.Context, targetUserID string) (CascadeResult, error)
	// DeleteBlog removes a blog and its comments on behalf of a moderator or
	// admin. Returns the number of comments removed with it.
	DeleteBlog(ctx context.Context, blogID string) (int64, error)
}
