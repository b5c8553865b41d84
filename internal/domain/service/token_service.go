package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the claims carried by session tokens. Subject holds the account ID
// and ID (jti) identifies the session for revocation.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies the opaque session tokens of the local backend.
type TokenService interface {
	// IssueSessionToken creates a signed token for the account and returns it with its ID.
	IssueSessionToken(accountID string) (token string, tokenID string, err error)

	// ValidateToken checks the signature and expiry of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetSessionTTL returns the configured lifetime of session tokens.
	GetSessionTTL() time.Duration
}
