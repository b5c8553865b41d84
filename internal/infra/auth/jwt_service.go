package auth

import (
	"time"

	"ordering/config"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultSessionTTL = 7 * 24 * time.Hour
	tokenIssuer       = "ordering-local"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds the session token service from the local backend settings.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Backend == nil || cfg.Backend.Local == nil || cfg.Backend.Local.TokenSecret == "" {
		return nil, errors.New("backend.local.tokenSecret must be provided")
	}

	ttl := cfg.Backend.Local.TokenTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &jwtService{
		secret: []byte(cfg.Backend.Local.TokenSecret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// IssueSessionToken signs a token whose subject is the account and whose jti identifies the session.
func (s *jwtService) IssueSessionToken(accountID string) (string, string, error) {
	if accountID == "" {
		return "", "", errors.New("account ID is required")
	}

	now := s.now()
	tokenID := uuid.NewString()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   accountID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", errors.Wrap(err, "sign session token")
	}

	return token, tokenID, nil
}

// ValidateToken verifies the signature, issuer and expiry.
// Failures are AuthErrors of kind ErrSessionExpired or ErrSessionInvalid.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.NewAuthError(domainerrors.ErrSessionExpired, err)
		}

		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, errors.New("token is missing subject or id"))
	}

	return claims, nil
}

// GetSessionTTL returns the configured lifetime of session tokens.
func (s *jwtService) GetSessionTTL() time.Duration {
	return s.ttl
}
