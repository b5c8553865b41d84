// Package local is an in-process account backend. It keeps accounts in memory,
// hashes passwords with bcrypt and hands out signed session tokens.
package local

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type account struct {
	passwordHash string
	profile      entity.Profile
}

type backend struct {
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	byID    map[string]*account
	byEmail map[string]string // normalized email -> account ID
	revoked map[string]struct{}
}

// NewBackend creates an empty local backend.
func NewBackend(hasher service.PasswordHasher, tokens service.TokenService, logger *slog.Logger) service.AuthService {
	return &backend{
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		byID:     make(map[string]*account),
		byEmail:  make(map[string]string),
		revoked:  make(map[string]struct{}),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (b *backend) SignIn(_ context.Context, email, password string) (*entity.Session, error) {
	b.mu.RLock()
	accountID, ok := b.byEmail[normalizeEmail(email)]
	var acc *account
	if ok {
		acc = b.byID[accountID]
	}
	b.mu.RUnlock()

	if acc == nil || !b.hasher.Check(password, acc.passwordHash) {
		return nil, domainerrors.NewAuthError(domainerrors.ErrInvalidCredentials, nil)
	}

	token, _, err := b.tokens.IssueSessionToken(accountID)
	if err != nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, err)
	}

	return &entity.Session{AccountID: accountID, Token: token}, nil
}

// SignOut revokes the session's token. Later profile reads with it fail.
func (b *backend) SignOut(_ context.Context, session *entity.Session) error {
	claims, err := b.verify(session)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.revoked[claims.ID] = struct{}{}
	b.mu.Unlock()

	return nil
}

func (b *backend) CreateAccount(_ context.Context, email, password, name string) (*entity.AccountRef, error) {
	name = strings.TrimSpace(name)
	if err := b.validate.Var(name, "required"); err != nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("name", "is required"))
	}
	normalized := normalizeEmail(email)
	if err := b.validate.Var(normalized, "required,email"); err != nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("email", "must be a valid email address"))
	}

	hash, err := b.hasher.Hash(password)
	if err != nil {
		kind := domainerrors.ErrPasswordStrength
		if errors.Is(err, domainerrors.ErrPasswordForbiddenWords) {
			kind = domainerrors.ErrPasswordForbiddenWords
		}

		return nil, domainerrors.NewAuthError(kind, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.byEmail[normalized]; exists {
		return nil, domainerrors.NewAuthError(domainerrors.ErrAccountExists, nil)
	}

	id := uuid.NewString()
	b.byID[id] = &account{
		passwordHash: hash,
		profile: entity.Profile{
			ID:        id,
			Name:      name,
			Email:     normalized,
			AvatarRef: entity.InitialsAvatar(name),
		},
	}
	b.byEmail[normalized] = id

	b.logger.Debug("Local account created", slog.String("account_id", id))

	return &entity.AccountRef{ID: id, Email: normalized, Name: name}, nil
}

// FetchCurrentProfile returns (nil, nil) when the token is valid but its account no longer exists.
func (b *backend) FetchCurrentProfile(_ context.Context, session *entity.Session) (*entity.Profile, error) {
	claims, err := b.verify(session)
	if err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	acc, ok := b.byID[claims.Subject]
	if !ok {
		return nil, nil
	}

	return acc.profile.Clone(), nil
}

func (b *backend) UpdateProfile(_ context.Context, session *entity.Session, update *entity.ProfileUpdate) (*entity.Profile, error) {
	claims, err := b.verify(session)
	if err != nil {
		return nil, err
	}
	if update == nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("profile", "is required"))
	}
	if err := b.validate.Struct(update); err != nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.byID[claims.Subject]
	if !ok {
		return nil, domainerrors.NewAuthError(domainerrors.ErrProfileNotFound, nil)
	}

	email := normalizeEmail(update.Email)
	if email != acc.profile.Email {
		if _, taken := b.byEmail[email]; taken {
			return nil, domainerrors.NewAuthError(domainerrors.ErrAccountExists, nil)
		}
		delete(b.byEmail, acc.profile.Email)
		b.byEmail[email] = acc.profile.ID
	}

	name := strings.TrimSpace(update.Name)
	if name != acc.profile.Name && strings.HasPrefix(acc.profile.AvatarRef, "initials:") {
		acc.profile.AvatarRef = entity.InitialsAvatar(name)
	}

	acc.profile.Name = name
	acc.profile.Email = email
	acc.profile.Phone = strings.TrimSpace(update.Phone)
	acc.profile.HomeAddress = strings.TrimSpace(update.HomeAddress)
	acc.profile.WorkAddress = strings.TrimSpace(update.WorkAddress)

	return acc.profile.Clone(), nil
}

// verify checks the token and that it has not been signed out.
func (b *backend) verify(session *entity.Session) (*service.Claims, error) {
	if session == nil || session.Token == "" {
		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, errors.New("no session token"))
	}

	claims, err := b.tokens.ValidateToken(session.Token)
	if err != nil {
		return nil, err
	}

	if session.AccountID != "" && session.AccountID != claims.Subject {
		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, errors.New("session account does not match token"))
	}

	b.mu.RLock()
	_, revoked := b.revoked[claims.ID]
	b.mu.RUnlock()
	if revoked {
		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, errors.New("session was signed out"))
	}

	return claims, nil
}
