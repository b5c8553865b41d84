package service

import (
	"context"

	"ordering/internal/domain/entity"
)

// AuthService is the remote account backend (sign-in, sign-out, account creation, profile).
// Implementations classify rejections as *errors.AuthError so callers can tell
// bad credentials from an expired session or an unreachable backend.
type AuthService interface {
	// SignIn exchanges credentials for a new session.
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)

	// SignOut ends the remote session. Callers treat it as best-effort.
	SignOut(ctx context.Context, session *entity.Session) error

	// CreateAccount registers a new account. It does not sign in.
	CreateAccount(ctx context.Context, email, password, name string) (*entity.AccountRef, error)

	// FetchCurrentProfile returns the profile of the session's account.
	// It returns (nil, nil) when the account has no profile document,
	// and an AuthError when the session is expired or invalid.
	FetchCurrentProfile(ctx context.Context, session *entity.Session) (*entity.Profile, error)

	// UpdateProfile replaces the editable profile fields and returns the stored profile.
	UpdateProfile(ctx context.Context, session *entity.Session, update *entity.ProfileUpdate) (*entity.Profile, error)
}
