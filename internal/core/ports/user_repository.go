package ports

import (
	"context"

	"github.com/campushub/blog-platform/internal/core/domain"
)

// UserRepository is the persistence boundary for user documents.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username or email collides with an existing account.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByLogin matches the key against username or email, both case-folded.
	FindByLogin(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	// FindByIDs returns the users whose ids are in the set; missing ids are
	// silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)

	// ExistsByUsernameOrEmail reports whether either key is already taken.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	// ListByRoles returns every user whose role name is in the set. A nil or
	// empty set means no role filter (all users).
	ListByRoles(ctx context.Context, roles []domain.RoleName) ([]domain.User, error)

	// SetRefreshToken stores the refresh token on the user record; an empty
	// token clears it.
	SetRefreshToken(ctx context.Context, id, token string) error
	UpdateAvatar(ctx context.Context, id, url string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)

	Delete(ctx context.Context, id string) error
}
