package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

// ListingCache abstracts the Redis-backed read cache for the public listings.
// Implementations must treat every failure as a miss; the listings are always
// reproducible from the database.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	// Purge drops every listing entry. Called after any mutation that can
	// change a listing.
	Purge(ctx context.Context)
}

// UserService serves the public read side: role-filtered listings and the
// aggregated profile view.
type UserService struct {
	users    ports.UserRepository
	blogs    ports.BlogRepository
	comments ports.CommentRepository
	cache    ListingCache
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, blogs ports.BlogRepository, comments ports.CommentRepository, cache ListingCache, log zerolog.Logger) *UserService {
	return &UserService{users: users, blogs: blogs, comments: comments, cache: cache, log: log}
}

// List returns the users matching the category, most senior first.
func (s *UserService) List(ctx context.Context, category string) ([]domain.PublicUser, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	cacheKey := "listing:users:" + string(cat)
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached []domain.PublicUser
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	users, err := s.users.ListByRoles(ctx, cat.Roles())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	domain.SortBySeniority(users)

	out := make([]domain.PublicUser, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}

	if s.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cacheKey, payload)
		}
	}
	return out, nil
}

// GetProfile resolves a user by username or hex id and assembles the nested
// profile view: blogs newest-first, each with its comments and their authors'
// attribution. The lookup key kind never changes the shape.
func (s *UserService) GetProfile(ctx context.Context, usernameOrID string) (*ports.ProfileView, error) {
	user, err := s.resolve(ctx, usernameOrID)
	if err != nil {
		return nil, err
	}

	blogs, err := s.blogs.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile blogs: %w", err)
	}

	blogIDs := make([]string, len(blogs))
	for i := range blogs {
		blogIDs[i] = blogs[i].ID
	}

	var comments []domain.Comment
	if len(blogIDs) > 0 {
		comments, err = s.comments.ListByBlogIDs(ctx, blogIDs)
		if err != nil {
			return nil, fmt.Errorf("profile comments: %w", err)
		}
	}

	authors, err := s.commentAuthors(ctx, comments)
	if err != nil {
		return nil, err
	}

	byBlog := make(map[string][]ports.ProfileComment, len(blogs))
	for _, c := range comments {
		author, ok := authors[c.OwnerID]
		if !ok {
			// Commenter deleted since; drop the attributionless comment
			// rather than returning a hole.
			continue
		}
		byBlog[c.BlogID] = append(byBlog[c.BlogID], ports.ProfileComment{
			ID:        c.ID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author:    author,
		})
	}

	view := &ports.ProfileView{
		User:  user.Public(),
		Blogs: make([]ports.ProfileBlog, 0, len(blogs)),
	}
	for _, b := range blogs {
		entries := byBlog[b.ID]
		if entries == nil {
			entries = []ports.ProfileComment{}
		}
		view.Blogs = append(view.Blogs, ports.ProfileBlog{
			ID:        b.ID,
			Thumbnail: b.Thumbnail,
			Content:   b.Content,
			CreatedAt: b.CreatedAt,
			Comments:  entries,
		})
	}
	return view, nil
}

// resolve tries the key as a username first, then as a document id, so the
// two lookup forms share one code path.
func (s *UserService) resolve(ctx context.Context, key string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, key)
	if err == nil {
		return user, nil
	}
	return s.users.FindByID(ctx, key)
}

func (s *UserService) commentAuthors(ctx context.Context, comments []domain.Comment) (map[string]domain.UserSummary, error) {
	if len(comments) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(comments))
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.OwnerID]; ok {
			continue
		}
		seen[c.OwnerID] = struct{}{}
		ids = append(ids, c.OwnerID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("comment authors: %w", err)
	}

	out := make(map[string]domain.UserSummary, len(users))
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out, nil
}
