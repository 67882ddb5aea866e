package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating an admin.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued tokens and account info.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         AdminUserInfo `json:"user"`
	IssuedAt     time.Time     `json:"issued_at"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest payload for updating the caller's password.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// RefreshToken is a persisted session token; revoking all of an admin's
// tokens is what "sign out" means server-side.
type RefreshToken struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Token     string     `db:"token" json:"token"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Revoked   bool       `db:"revoked" json:"revoked"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
}

// JWTClaims represents the JWT payload for admin access tokens. The admin
// type and expiry ride along so the guard can reject lapsed temporary
// admins without a database round trip.
type JWTClaims struct {
	UserID         string     `json:"user_id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	AdminType      AdminType  `json:"admin_type"`
	AdminExpiresAt *time.Time `json:"admin_expires_at,omitempty"`
	jwt.RegisteredClaims
}
