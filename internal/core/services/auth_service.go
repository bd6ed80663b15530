package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/granaapp/grana_backend/internal/platform/config"
	"github.com/granaapp/grana_backend/internal/utils"
)

// AuthService verifies credentials and issues access and refresh tokens.
type AuthService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*portssvc.AuthTokens, error) {
	authUser, err := s.userRepo.FindAuthUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure as a wrong password, no account enumeration
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, authUser.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	tokens, err := s.issueTokens(ctx, authUser)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", "user_id", authUser.UserID)
	return tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair, rotating
// the stored refresh token.
func (s *AuthService) Refresh(ctx context.Context, userID string, refreshToken string) (*portssvc.AuthTokens, error) {
	authUser, err := s.userRepo.FindAuthUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for token refresh", "user_id", userID)
		return nil, err
	}

	if authUser.RefreshTokenHash == "" ||
		!utils.CompareRefreshTokenHash(refreshToken, authUser.RefreshTokenHash) ||
		time.Now().After(authUser.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrUnauthorized
	}

	tokens, err := s.issueTokens(ctx, authUser)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Tokens refreshed", "user_id", authUser.UserID)
	return tokens, nil
}

// Logout invalidates the user's stored refresh token.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to clear refresh token", "user_id", userID)
		return err
	}
	return nil
}

// issueTokens mints an access JWT and a rotated refresh token, persisting
// only the hash of the latter.
func (s *AuthService) issueTokens(ctx context.Context, authUser *portsrepo.AuthUser) (*portssvc.AuthTokens, error) {
	accessToken, err := utils.GenerateJWT(authUser.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", "user_id", authUser.UserID)
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", "user_id", authUser.UserID)
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.userRepo.UpdateRefreshToken(ctx, authUser.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", "user_id", authUser.UserID)
		return nil, err
	}

	user := authUser.User
	return &portssvc.AuthTokens{
		AccessToken:   accessToken,
		AccessExpiry:  now.Add(s.cfg.JWTExpiryDuration),
		RefreshToken:  refreshToken,
		RefreshExpiry: refreshExpiry,
		User:          &user,
	}, nil
}
