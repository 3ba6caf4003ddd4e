package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the authenticated caller identity through middleware.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	APIKey   string `json:"api_key,omitempty"`
	UserTier string `json:"user_tier"`
	jwt.RegisteredClaims
}
