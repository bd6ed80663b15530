package repositories

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// AuthUser carries a domain user together with its credential hashes. Only
// the user repository and the auth service ever see this shape.
type AuthUser struct {
	domain.User
	PasswordHash           string
	RefreshTokenHash       string
	RefreshTokenExpiryTime time.Time
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindAuthUserByEmail retrieves a user with credential hashes by email.
	FindAuthUserByEmail(ctx context.Context, email string) (*AuthUser, error)

	// FindAuthUserByID retrieves a user with credential hashes by id.
	FindAuthUserByID(ctx context.Context, userID string) (*AuthUser, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user with its password hash.
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error

	// UpdateRefreshToken stores the hash and expiry of a freshly issued
	// refresh token, replacing any previous one.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates the stored refresh token, if any.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
