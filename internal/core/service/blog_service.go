package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

const folderThumbnails = "thumbnails"

// BlogService owns the blog write path and the role-filtered public listing.
type BlogService struct {
	blogs  ports.BlogRepository
	users  ports.UserRepository
	images ports.ImageStorage
	cache  ListingCache
	log    zerolog.Logger
}

func NewBlogService(blogs ports.BlogRepository, users ports.UserRepository, images ports.ImageStorage, cache ListingCache, log zerolog.Logger) *BlogService {
	return &BlogService{blogs: blogs, users: users, images: images, cache: cache, log: log}
}

// Create uploads the thumbnail first and persists the blog only after the
// upload succeeds; a failed insert removes the uploaded thumbnail again.
func (s *BlogService) Create(ctx context.Context, ownerID, content string, thumbnail *multipart.FileHeader) (*domain.Blog, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if thumbnail == nil {
		return nil, fmt.Errorf("%w: thumbnail is required", domain.ErrInvalidInput)
	}

	url, err := s.images.Upload(ctx, thumbnail, folderThumbnails)
	if err != nil {
		return nil, fmt.Errorf("%w: thumbnail: %v", domain.ErrUploadFailed, err)
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		OwnerID:   ownerID,
		Thumbnail: url,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.blogs.Create(ctx, blog)
	if err != nil {
		if delErr := s.images.Delete(ctx, url); delErr != nil {
			s.log.Warn().Err(delErr).Str("url", url).Msg("failed to remove orphaned thumbnail")
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	s.purge(ctx)
	s.log.Info().Str("blog_id", created.ID).Str("owner_id", ownerID).Msg("blog created")
	return created, nil
}

// Update rewrites the content. Ownership was checked upstream.
func (s *BlogService) Update(ctx context.Context, blogID, content string) (*domain.Blog, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}

	updated, err := s.blogs.UpdateContent(ctx, blogID, content)
	if err != nil {
		return nil, err
	}
	s.purge(ctx)
	return updated, nil
}

// Delete removes the blog and its thumbnail. Ownership was checked upstream.
func (s *BlogService) Delete(ctx context.Context, blogID string) error {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, blogID); err != nil {
		return err
	}
	if err := s.images.Delete(ctx, blog.Thumbnail); err != nil {
		s.log.Warn().Err(err).Str("blog_id", blogID).Msg("failed to remove thumbnail of deleted blog")
	}
	s.purge(ctx)
	return nil
}

// List returns blogs newest-first. For a role category, only blogs whose
// owner matches are returned; a blog whose owner falls outside the category
// is dropped entirely rather than listed with an empty owner.
func (s *BlogService) List(ctx context.Context, category string) ([]ports.BlogWithOwner, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	cacheKey := "listing:blogs:" + string(cat)
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached []ports.BlogWithOwner
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	owners := make(map[string]domain.UserSummary)
	var blogs []domain.Blog

	if cat == domain.CategoryAll {
		blogs, err = s.blogs.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		ownerUsers, err := s.users.FindByIDs(ctx, ownerIDs(blogs))
		if err != nil {
			return nil, fmt.Errorf("list blog owners: %w", err)
		}
		for i := range ownerUsers {
			owners[ownerUsers[i].ID] = ownerUsers[i].Summary()
		}
	} else {
		matching, err := s.users.ListByRoles(ctx, cat.Roles())
		if err != nil {
			return nil, fmt.Errorf("list blog owners: %w", err)
		}
		ids := make([]string, len(matching))
		for i := range matching {
			ids[i] = matching[i].ID
			owners[matching[i].ID] = matching[i].Summary()
		}
		blogs, err = s.blogs.ListByOwners(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
	}

	out := make([]ports.BlogWithOwner, 0, len(blogs))
	for _, b := range blogs {
		owner, ok := owners[b.OwnerID]
		if !ok {
			// Owner vanished between queries (concurrent delete); a listing
			// entry must never carry an empty owner.
			continue
		}
		out = append(out, ports.BlogWithOwner{Blog: b, Owner: owner})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			s.cache.Set(ctx, cacheKey, payload)
		}
	}
	return out, nil
}

func (s *BlogService) purge(ctx context.Context) {
	if s.cache != nil {
		s.cache.Purge(ctx)
	}
}

func ownerIDs(blogs []domain.Blog) []string {
	seen := make(map[string]struct{}, len(blogs))
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.OwnerID]; ok {
			continue
		}
		seen[b.OwnerID] = struct{}{}
		ids = append(ids, b.OwnerID)
	}
	return ids
}
