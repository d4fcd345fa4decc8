package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims is the slice of the access token the client cares about:
// who the reviewer is and when the session ends. The client holds no
// signing secret, so claims are decoded without signature verification;
// the server remains the authority on every request.
type TokenClaims struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the bearer token's claims.
func ParseClaims(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CheckSession reports whether the token still names a live session.
// Returns ErrExpiredToken once the expiry has passed, so callers can say
// "session expired" before making a doomed call.
func CheckSession(tokenString string) (*TokenClaims, error) {
	claims, err := ParseClaims(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return claims, ErrExpiredToken
	}
	return claims, nil
}
