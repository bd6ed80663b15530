package services

import (
	"context"
	"time"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/dto"
)

// AuthTokens carries the credentials issued by a successful login or refresh.
type AuthTokens struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
	User          *domain.User
}

// AuthSvcFacade defines credential verification and token issuance.
// Identity is an external collaborator of the ledger core: the core only
// ever sees the owner id these tokens resolve to.
type AuthSvcFacade interface {
	// Login verifies credentials and issues a fresh token pair.
	Login(ctx context.Context, req dto.LoginRequest) (*AuthTokens, error)

	// Refresh exchanges a valid refresh token for a fresh token pair,
	// rotating the stored refresh token.
	Refresh(ctx context.Context, userID string, refreshToken string) (*AuthTokens, error)

	// Logout invalidates the user's stored refresh token.
	Logout(ctx context.Context, userID string) error
}
