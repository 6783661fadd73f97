package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

func testTokens() TokenConfig {
	return TokenConfig{AccessSecret: "access-secret", RefreshSecret: "refresh-secret"}
}

func registerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Fullname: "Test " + username,
		Password: "s3cret",
		Avatar:   &multipart.FileHeader{Filename: "avatar.png"},
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	images := newStubImages()
	svc := NewAuthService(repo, images, newStubCache(), testTokens(), zerolog.Nop())

	user, err := svc.Register(context.Background(), registerInput("Alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected case-folded username, got %q", user.Username)
	}
	if user.Role.Role != domain.RoleMember || user.Role.Position != 0 {
		t.Fatalf("expected member role at position 0, got %+v", user.Role)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Avatar == "" {
		t.Fatalf("expected avatar URL to be set")
	}
}

func TestAuthService_Register_MissingAvatar(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubImages(), newStubCache(), testTokens(), zerolog.Nop())

	in := registerInput("bob")
	in.Avatar = nil
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	images := newStubImages()
	svc := NewAuthService(repo, images, newStubCache(), testTokens(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("carol")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	uploadsBefore := images.uploads

	if _, err := svc.Register(context.Background(), registerInput("carol")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if images.uploads != uploadsBefore {
		t.Fatalf("duplicate registration must not upload media")
	}
}

func TestAuthService_Register_CoverUploadFailureDiscardsAvatar(t *testing.T) {
	repo := newStubUserRepo()
	images := newStubImages()
	images.failAfter = 1 // avatar succeeds, cover fails
	svc := NewAuthService(repo, images, newStubCache(), testTokens(), zerolog.Nop())

	in := registerInput("dave")
	in.CoverImage = &multipart.FileHeader{Filename: "cover.png"}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if len(images.deleted) != 1 || images.deleted[0] != images.uploaded[0] {
		t.Fatalf("expected the uploaded avatar to be discarded, got deletions %v", images.deleted)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubImages(), newStubCache(), testTokens(), zerolog.Nop())

	created, err := svc.Register(context.Background(), registerInput("erin"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, pair, err := svc.Login(context.Background(), "erin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected a full token pair, got %+v", pair)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.RefreshToken != pair.RefreshToken {
		t.Fatalf("refresh token not persisted on the user record")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubImages(), newStubCache(), testTokens(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), registerInput("frank")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "frank", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_RotatesPair(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubImages(), newStubCache(), testTokens(), zerolog.Nop())

	created, err := svc.Register(context.Background(), registerInput("grace"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, pair, err := svc.Login(context.Background(), "grace", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.RefreshToken != rotated.RefreshToken {
		t.Fatalf("rotated refresh token not persisted")
	}

	// Once rotation produced a different token, the superseded one is dead.
	// Tokens minted within the same second are byte-identical, so only assert
	// when they actually differ.
	if rotated.RefreshToken != pair.RefreshToken {
		if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for superseded token, got %v", err)
		}
	}
}

func TestAuthService_Refresh_RejectsUnknownToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubImages(), newStubCache(), testTokens(), zerolog.Nop())

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubImages(), newStubCache(), testTokens(), zerolog.Nop())

	created, err := svc.Register(context.Background(), registerInput("heidi"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "heidi", "s3cret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), created.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.RefreshToken != "" {
		t.Fatalf("refresh token not cleared")
	}

	// Second call and a vanished user are both no-ops.
	if err := svc.Logout(context.Background(), created.ID); err != nil {
		t.Fatalf("repeat logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), "missing"); err != nil {
		t.Fatalf("logout of unknown user should be a no-op, got %v", err)
	}
}

func TestAuthService_UpdateAvatar_ReplacesAndDiscardsOld(t *testing.T) {
	repo := newStubUserRepo()
	images := newStubImages()
	svc := NewAuthService(repo, images, newStubCache(), testTokens(), zerolog.Nop())

	created, err := svc.Register(context.Background(), registerInput("ivan"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldAvatar := created.Avatar

	updated, err := svc.UpdateAvatar(context.Background(), created.ID, &multipart.FileHeader{Filename: "new.png"})
	if err != nil {
		t.Fatalf("update avatar failed: %v", err)
	}
	if updated.Avatar == oldAvatar {
		t.Fatalf("avatar URL unchanged")
	}

	found := false
	for _, url := range images.deleted {
		if url == oldAvatar {
			found = true
		}
	}
	if !found {
		t.Fatalf("previous avatar %q was not discarded, deletions: %v", oldAvatar, images.deleted)
	}
}
