package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

// CommentService owns comment creation and owner-gated deletion.
type CommentService struct {
	comments ports.CommentRepository
	blogs    ports.BlogRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, blogs ports.BlogRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, blogs: blogs, log: log}
}

// Create attaches a comment to an existing blog.
func (s *CommentService) Create(ctx context.Context, authorID, blogID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || strings.TrimSpace(blogID) == "" {
		return nil, fmt.Errorf("%w: content and blog id are required", domain.ErrInvalidInput)
	}

	blog, err := s.blogs.FindByID(ctx, strings.TrimSpace(blogID))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.comments.Create(ctx, &domain.Comment{
		BlogID:    blog.ID,
		OwnerID:   authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().Str("comment_id", created.ID).Str("blog_id", blog.ID).Msg("comment created")
	return created, nil
}

// Delete removes the comment when the requester owns it.
func (s *CommentService) Delete(ctx context.Context, commentID, requesterID string) error {
	comment, err := s.comments.FindByID(ctx, strings.TrimSpace(commentID))
	if err != nil {
		return err
	}
	if comment.OwnerID != requesterID {
		return fmt.Errorf("%w: only the comment owner may delete it", domain.ErrForbidden)
	}
	return s.comments.Delete(ctx, comment.ID)
}
