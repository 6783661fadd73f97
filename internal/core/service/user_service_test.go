package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/blog-platform/internal/core/domain"
)

func TestUserService_List_SortsBySeniority(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubBlogRepo(), newStubCommentRepo(), newStubCache(), zerolog.Nop())

	seedUser(t, users, "vicechair", domain.Role{Role: domain.RoleModerator, Position: 3})
	seedUser(t, users, "chair", domain.Role{Role: domain.RoleModerator, Position: 2})
	seedUser(t, users, "president", domain.Role{Role: domain.RoleAdmin, Position: 1})
	seedUser(t, users, "member1", domain.Role{Role: domain.RoleMember})

	listed, err := svc.List(context.Background(), "moderator")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("moderator category must include admins, got %d users", len(listed))
	}
	want := []string{"president", "chair", "vicechair"}
	for i, username := range want {
		if listed[i].Username != username {
			t.Fatalf("position %d: expected %s, got %s", i, username, listed[i].Username)
		}
	}
}

func TestUserService_List_MentorSeniority(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubBlogRepo(), newStubCommentRepo(), newStubCache(), zerolog.Nop())

	seedUser(t, users, "junior", domain.Role{Role: domain.RoleMentor, Position: -1})
	seedUser(t, users, "senior", domain.Role{Role: domain.RoleMentor, Position: -5})

	listed, err := svc.List(context.Background(), "mentor")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 2 || listed[0].Username != "senior" {
		t.Fatalf("most senior mentor must lead the listing, got %+v", listed)
	}
}

func TestUserService_List_UsesCache(t *testing.T) {
	users := newStubUserRepo()
	cache := newStubCache()
	svc := NewUserService(users, newStubBlogRepo(), newStubCommentRepo(), cache, zerolog.Nop())

	seedUser(t, users, "alice", domain.Role{Role: domain.RoleMember})

	first, err := svc.List(context.Background(), "member")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, ok := cache.entries["listing:users:member"]; !ok {
		t.Fatalf("listing not written to the cache")
	}

	// Users added behind the cache's back stay invisible until a purge.
	seedUser(t, users, "bob", domain.Role{Role: domain.RoleMember})
	second, err := svc.List(context.Background(), "member")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected cached listing, got a fresh one")
	}
}

func TestUserService_List_RejectsUnknownCategory(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubBlogRepo(), newStubCommentRepo(), newStubCache(), zerolog.Nop())

	if _, err := svc.List(context.Background(), "wizard"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_GetProfile_AggregatesBlogsAndComments(t *testing.T) {
	users := newStubUserRepo()
	blogs := newStubBlogRepo()
	comments := newStubCommentRepo()
	svc := NewUserService(users, blogs, comments, newStubCache(), zerolog.Nop())

	owner := seedUser(t, users, "writer", domain.Role{Role: domain.RoleMember})
	commenter := seedUser(t, users, "reader", domain.Role{Role: domain.RoleMember})

	blog, _ := blogs.Create(context.Background(), &domain.Blog{
		OwnerID: owner.ID, Content: "post", Thumbnail: "thumb", CreatedAt: time.Now().UTC(),
	})
	empty, _ := blogs.Create(context.Background(), &domain.Blog{
		OwnerID: owner.ID, Content: "quiet post", Thumbnail: "thumb2", CreatedAt: time.Now().UTC(),
	})
	_, _ = comments.Create(context.Background(), &domain.Comment{BlogID: blog.ID, OwnerID: commenter.ID, Content: "nice"})

	byUsername, err := svc.GetProfile(context.Background(), "writer")
	if err != nil {
		t.Fatalf("profile by username failed: %v", err)
	}
	if byUsername.User.Username != "writer" {
		t.Fatalf("unexpected profile user: %+v", byUsername.User)
	}
	if len(byUsername.Blogs) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(byUsername.Blogs))
	}
	for _, b := range byUsername.Blogs {
		if b.Comments == nil {
			t.Fatalf("comments must be a slice, never nil")
		}
		switch b.ID {
		case blog.ID:
			if len(b.Comments) != 1 || b.Comments[0].Author.Username != "reader" {
				t.Fatalf("expected one attributed comment, got %+v", b.Comments)
			}
		case empty.ID:
			if len(b.Comments) != 0 {
				t.Fatalf("expected no comments on the quiet post")
			}
		}
	}

	byID, err := svc.GetProfile(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("profile by id failed: %v", err)
	}
	if len(byID.Blogs) != len(byUsername.Blogs) {
		t.Fatalf("lookup key must not change the profile shape")
	}
}

func TestUserService_GetProfile_DropsOrphanedComments(t *testing.T) {
	users := newStubUserRepo()
	blogs := newStubBlogRepo()
	comments := newStubCommentRepo()
	svc := NewUserService(users, blogs, comments, newStubCache(), zerolog.Nop())

	owner := seedUser(t, users, "writer", domain.Role{Role: domain.RoleMember})
	blog, _ := blogs.Create(context.Background(), &domain.Blog{OwnerID: owner.ID, Content: "post", Thumbnail: "t"})
	_, _ = comments.Create(context.Background(), &domain.Comment{BlogID: blog.ID, OwnerID: "deleted-user", Content: "ghost"})

	view, err := svc.GetProfile(context.Background(), "writer")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if len(view.Blogs) != 1 || len(view.Blogs[0].Comments) != 0 {
		t.Fatalf("comment without a live author must be dropped, got %+v", view.Blogs[0].Comments)
	}
}

func TestUserService_GetProfile_Unknown(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubBlogRepo(), newStubCommentRepo(), newStubCache(), zerolog.Nop())

	if _, err := svc.GetProfile(context.Background(), "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
