package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
)

const (
	folderAvatars = "avatars"
	folderCovers  = "covers"
)

// TokenConfig carries the signing material for both token kinds. Passed
// explicitly at construction; no process-wide session state.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AuthService implements registration, login, session lifecycle, and profile
// image updates.
type AuthService struct {
	users  ports.UserRepository
	images ports.ImageStorage
	cache  ListingCache
	tokens TokenConfig
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, images ports.ImageStorage, cache ListingCache, tokens TokenConfig, log zerolog.Logger) *AuthService {
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = time.Hour
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = 10 * 24 * time.Hour
	}
	return &AuthService{users: users, images: images, cache: cache, tokens: tokens, log: log}
}

// Register creates a member account. The uniqueness check runs before any
// media upload so a conflicting request never leaves files behind; if the
// database insert fails after the uploads, the uploaded images are removed
// again.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullname := strings.TrimSpace(in.Fullname)

	if username == "" || email == "" || fullname == "" || strings.TrimSpace(in.Password) == "" {
		return nil, fmt.Errorf("%w: username, email, fullname and password are required", domain.ErrInvalidInput)
	}
	if in.Avatar == nil {
		return nil, fmt.Errorf("%w: avatar is required", domain.ErrInvalidInput)
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUserExists
	}

	avatarURL, err := s.images.Upload(ctx, in.Avatar, folderAvatars)
	if err != nil {
		return nil, fmt.Errorf("%w: avatar: %v", domain.ErrUploadFailed, err)
	}

	coverURL := ""
	if in.CoverImage != nil {
		coverURL, err = s.images.Upload(ctx, in.CoverImage, folderCovers)
		if err != nil {
			s.discard(ctx, avatarURL)
			return nil, fmt.Errorf("%w: cover image: %v", domain.ErrUploadFailed, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.discard(ctx, avatarURL, coverURL)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		PasswordHash: string(hash),
		Avatar:       avatarURL,
		CoverImage:   coverURL,
		Batch:        in.Batch,
		UniversityID: in.UniversityID,
		Role:         domain.Role{Role: domain.RoleMember, Position: 0},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.discard(ctx, avatarURL, coverURL)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Purge(ctx)
	}
	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the password, rotates the stored refresh token, and returns
// a fresh token pair.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, ports.TokenPair, error) {
	key := strings.ToLower(strings.TrimSpace(usernameOrEmail))
	if key == "" || password == "" {
		return nil, ports.TokenPair{}, fmt.Errorf("%w: username or email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByLogin(ctx, key)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, ports.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, pair, nil
}

// Logout clears the stored refresh token. Calling it again is a no-op.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.users.SetRefreshToken(ctx, userID, ""); err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	return nil
}

// Refresh validates the presented refresh token against the one on file for
// its subject and rotates the pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
	if refreshToken == "" {
		return ports.TokenPair{}, fmt.Errorf("%w: missing refresh token", domain.ErrInvalidCredentials)
	}

	userID, err := parseSubject(refreshToken, s.tokens.RefreshSecret)
	if err != nil {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ports.TokenPair{}, domain.ErrInvalidCredentials
		}
		return ports.TokenPair{}, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return ports.TokenPair{}, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return ports.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}
	return pair, nil
}

// UpdateAvatar replaces the avatar, deleting the previous image best-effort.
func (s *AuthService) UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error) {
	return s.updateImage(ctx, userID, file, folderAvatars)
}

// UpdateCoverImage replaces the cover image.
func (s *AuthService) UpdateCoverImage(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.User, error) {
	return s.updateImage(ctx, userID, file, folderCovers)
}

func (s *AuthService) updateImage(ctx context.Context, userID string, file *multipart.FileHeader, folder string) (*domain.User, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: image file is required", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, file, folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	var updated *domain.User
	var previous string
	if folder == folderAvatars {
		previous = user.Avatar
		updated, err = s.users.UpdateAvatar(ctx, userID, url)
	} else {
		previous = user.CoverImage
		updated, err = s.users.UpdateCoverImage(ctx, userID, url)
	}
	if err != nil {
		s.discard(ctx, url)
		return nil, err
	}

	s.discard(ctx, previous)
	if s.cache != nil {
		s.cache.Purge(ctx)
	}
	return updated, nil
}

// discard removes uploaded images left over from a failed or superseded
// operation. Failures are logged, not propagated.
func (s *AuthService) discard(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.images.Delete(ctx, url); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("failed to remove uploaded image")
		}
	}
}

func (s *AuthService) issueTokens(u *domain.User) (ports.TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"email":    u.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokens.AccessTTL).Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.tokens.AccessSecret))
	if err != nil {
		return ports.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	// Refresh tokens carry the subject only.
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokens.RefreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.tokens.RefreshSecret))
	if err != nil {
		return ports.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// parseSubject verifies an HS256 token and extracts its subject claim.
func parseSubject(token, secret string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("parse token: %w", err)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return sub, nil
}
