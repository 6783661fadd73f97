package ports

import (
	"context"
	"time"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// ProfileComment is a comment enriched with its author's public attribution.
type ProfileComment struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
	Author    domain.UserSummary `json:"author"`
}

// ProfileBlog is one of the profiled user's posts together with its comments.
// Comments is always a slice, never nil, so zero comments encode as [].
type ProfileBlog struct {
	ID        string           `json:"id"`
	Thumbnail string           `json:"thumbnail"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"createdAt"`
	Comments  []ProfileComment `json:"comments"`
}

// ProfileView aggregates a user's public fields with their posts, newest
// first. Blogs is always a slice, never nil.
type ProfileView struct {
	User  domain.PublicUser `json:"user"`
	Blogs []ProfileBlog     `json:"blogs"`
}

// UserService serves the public read side: role-filtered listings and the
// aggregated profile view.
type UserService interface {
	// List returns the users matching the category, ordered by seniority.
	List(ctx context.Context, category string) ([]domain.PublicUser, error)
	// GetProfile resolves a user by username or hex id and assembles the
	// nested profile. The shape is identical for both lookup keys.
	GetProfile(ctx context.Context, usernameOrID string) (*ProfileView, error)
}
