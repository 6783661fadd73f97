package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// In-memory fakes shared by the service tests. All of them clone on the way
// in and out so tests never alias stored state.

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByLogin(_ context.Context, key string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == key || u.Email == key {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ListByRoles(_ context.Context, roles []domain.RoleName) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if len(roles) == 0 {
			out = append(out, *cloneUser(u))
			continue
		}
		for _, name := range roles {
			if u.Role.Role == name {
				out = append(out, *cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) SetRefreshToken(_ context.Context, id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, id, url string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Avatar = url
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateCoverImage(_ context.Context, id, url string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.CoverImage = url
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubBlogRepo struct {
	blogs  map[string]*domain.Blog
	nextID int
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func cloneBlog(b *domain.Blog) *domain.Blog {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

func (r *stubBlogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	copy := cloneBlog(blog)
	r.nextID++
	copy.ID = fmt.Sprintf("blog-%d", r.nextID)
	r.blogs[copy.ID] = cloneBlog(copy)
	return copy, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	if b, ok := r.blogs[id]; ok {
		return cloneBlog(b), nil
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) UpdateContent(_ context.Context, id, content string) (*domain.Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	b.Content = content
	return cloneBlog(b), nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *stubBlogRepo) ListAll(_ context.Context) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		out = append(out, *cloneBlog(b))
	}
	return out, nil
}

func (r *stubBlogRepo) ListByOwners(_ context.Context, ownerIDs []string) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range r.blogs {
		for _, id := range ownerIDs {
			if b.OwnerID == id {
				out = append(out, *cloneBlog(b))
				break
			}
		}
	}
	return out, nil
}

func (r *stubBlogRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Blog, error) {
	return r.ListByOwners(ctx, []string{ownerID})
}

func (r *stubBlogRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for id, b := range r.blogs {
		if b.OwnerID == ownerID {
			delete(r.blogs, id)
			n++
		}
	}
	return n, nil
}

type stubCommentRepo struct {
	comments map[string]*domain.Comment
	nextID   int
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func cloneComment(c *domain.Comment) *domain.Comment {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCommentRepo) Create(_ context.Context, comment *domain.Comment) (*domain.Comment, error) {
	copy := cloneComment(comment)
	r.nextID++
	copy.ID = fmt.Sprintf("comment-%d", r.nextID)
	r.comments[copy.ID] = cloneComment(copy)
	return copy, nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	if c, ok := r.comments[id]; ok {
		return cloneComment(c), nil
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) ListByBlogIDs(_ context.Context, blogIDs []string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		for _, id := range blogIDs {
			if c.BlogID == id {
				out = append(out, *cloneComment(c))
				break
			}
		}
	}
	return out, nil
}

func (r *stubCommentRepo) DeleteByBlogIDs(_ context.Context, blogIDs []string) (int64, error) {
	var n int64
	for id, c := range r.comments {
		for _, blogID := range blogIDs {
			if c.BlogID == blogID {
				delete(r.comments, id)
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *stubCommentRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for id, c := range r.comments {
		if c.OwnerID == ownerID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

// stubImages records uploads and deletions. A non-negative failAfter makes
// Upload fail once that many uploads have succeeded.
type stubImages struct {
	uploads     int
	failAfter   int
	uploaded    []string
	deleted     []string
	deleteError error
}

func newStubImages() *stubImages {
	return &stubImages{failAfter: -1}
}

func (s *stubImages) Upload(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if s.failAfter >= 0 && s.uploads >= s.failAfter {
		return "", fmt.Errorf("upload rejected")
	}
	s.uploads++
	url := fmt.Sprintf("https://media.test/%s/%s-%d", folder, strings.TrimSuffix(file.Filename, ".png"), s.uploads)
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *stubImages) Delete(_ context.Context, url string) error {
	if s.deleteError != nil {
		return s.deleteError
	}
	s.deleted = append(s.deleted, url)
	return nil
}

// stubCache counts purges and serves a fixed payload map.
type stubCache struct {
	entries map[string][]byte
	purges  int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Get(_ context.Context, key string) ([]byte, bool) {
	payload, ok := c.entries[key]
	return payload, ok
}

func (c *stubCache) Set(_ context.Context, key string, payload []byte) {
	c.entries[key] = payload
}

func (c *stubCache) Purge(_ context.Context) {
	c.entries = make(map[string][]byte)
	c.purges++
}
