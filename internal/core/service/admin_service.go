package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

// AdminService covers the dashboard operations: role changes and cascading
// deletions.
type AdminService struct {
	users    ports.UserRepository
	blogs    ports.BlogRepository
	comments ports.CommentRepository
	cache    ListingCache
	log      zerolog.Logger
}

func NewAdminService(users ports.UserRepository, blogs ports.BlogRepository, comments ports.CommentRepository, cache ListingCache, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, blogs: blogs, comments: comments, cache: cache, log: log}
}

// ChangeRole validates the assignment against the position-sign rules before
// persisting it.
func (s *AdminService) ChangeRole(ctx context.Context, targetUserID string, role domain.Role) (*domain.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, targetUserID, role)
	if err != nil {
		return nil, err
	}

	s.purge(ctx)
	s.log.Info().
		Str("user_id", targetUserID).
		Str("role", string(role.Role)).
		Int("position", role.Position).
		Msg("role changed")
	return updated, nil
}

// DeleteUser cascades in dependency order: first every comment the user wrote
// or that sits on one of their blogs, then their blogs, then the user record.
// The steps are not wrapped in a transaction; a concurrent reader may observe
// an intermediate state, but never a comment or blog pointing at an already
// deleted parent.
func (s *AdminService) DeleteUser(ctx context.Context, targetUserID string) (ports.CascadeResult, error) {
	var result ports.CascadeResult

	if _, err := s.users.FindByID(ctx, targetUserID); err != nil {
		return result, err
	}

	blogs, err := s.blogs.ListByOwner(ctx, targetUserID)
	if err != nil {
		return result, fmt.Errorf("cascade: list blogs: %w", err)
	}
	blogIDs := make([]string, len(blogs))
	for i := range blogs {
		blogIDs[i] = blogs[i].ID
	}

	if len(blogIDs) > 0 {
		n, err := s.comments.DeleteByBlogIDs(ctx, blogIDs)
		if err != nil {
			return result, fmt.Errorf("cascade: delete comments on blogs: %w", err)
		}
		result.CommentsDeleted += n
	}

	// Comments the user left on other people's blogs.
	n, err := s.comments.DeleteByOwner(ctx, targetUserID)
	if err != nil {
		return result, fmt.Errorf("cascade: delete authored comments: %w", err)
	}
	result.CommentsDeleted += n

	result.BlogsDeleted, err = s.blogs.DeleteByOwner(ctx, targetUserID)
	if err != nil {
		return result, fmt.Errorf("cascade: delete blogs: %w", err)
	}

	if err := s.users.Delete(ctx, targetUserID); err != nil {
		return result, fmt.Errorf("cascade: delete user: %w", err)
	}

	s.purge(ctx)
	s.log.Info().
		Str("user_id", targetUserID).
		Int64("blogs_deleted", result.BlogsDeleted).
		Int64("comments_deleted", result.CommentsDeleted).
		Msg("user deleted with cascade")
	return result, nil
}

// DeleteBlog removes a blog and its comments on behalf of a moderator or
// admin.
func (s *AdminService) DeleteBlog(ctx context.Context, blogID string) (int64, error) {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		return 0, err
	}

	comments, err := s.comments.DeleteByBlogIDs(ctx, []string{blogID})
	if err != nil {
		return 0, fmt.Errorf("delete blog comments: %w", err)
	}
	if err := s.blogs.Delete(ctx, blogID); err != nil {
		return comments, err
	}

	s.purge(ctx)
	s.log.Info().Str("blog_id", blogID).Int64("comments_deleted", comments).Msg("blog removed by moderator")
	return comments, nil
}

func (s *AdminService) purge(ctx context.Context) {
	if s.cache != nil {
		s.cache.Purge(ctx)
	}
}
