package ports

import (
	"context"
	"mime/multipart"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// RegisterInput carries everything the registration endpoint collects.
// Avatar is required, CoverImage optional; both arrive as multipart files.
type RegisterInput struct {
	Username     string
	Email        string
	Fullname     string
	Password     string
	Batch        int
	UniversityID int
	Avatar       *multipart.FileHeader
	CoverImage   *multipart.FileHeader
}

// TokenPair bundles the short-lived access token with its long-lived refresh
// counterpart.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService implements registration, login, session lifecycle, and profile
// image updates.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials, persists a fresh refresh token on the user
	// record, and returns both tokens.
	Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, TokenPair, error)
	// Logout clears the stored refresh token. Idempotent.
	Logout(ctx context.Context, userID string) error
	// Refresh validates the refresh token against the one on file and rotates
	// the pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)

	UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error)
}
