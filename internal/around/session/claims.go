package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/5hraddha/around/internal/around/entity"
)

// TokenClaims are the fields the auth service puts in its bearer token.
type TokenClaims struct {
	UserID    entity.UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type authClaims struct {
	ID string `json:"_id"`
	jwt.RegisteredClaims
}

// ParseClaims decodes token without verifying its signature. The client
// holds no key; the server remains the judge of validity.
func ParseClaims(token string) (TokenClaims, error) {
	var parsed authClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &parsed); err != nil {
		return TokenClaims{}, fmt.Errorf("parse token claims: %w", err)
	}
	claims := TokenClaims{UserID: entity.UserID(parsed.ID)}
	if claims.UserID == "" {
		claims.UserID = entity.UserID(parsed.Subject)
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}

// Expired reports whether the claims carry an expiry at or before now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
