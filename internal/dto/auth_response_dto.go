package dto

import "time"

// LoginResponse is returned on a successful login or token refresh. The
// refresh token itself travels in an http-only cookie, never in the body.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}
