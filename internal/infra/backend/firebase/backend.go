// Package firebase implements the account backend on Firebase Authentication.
// Password sign-in goes through the Identity Toolkit REST API; everything else uses the Admin SDK.
package firebase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"ordering/config"
	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Custom claims holding the profile fields Firebase has no column for.
const (
	claimHomeAddress = "homeAddress"
	claimWorkAddress = "workAddress"
)

// adminClient is the subset of *auth.Client the backend uses.
type adminClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// passwordVerifier exchanges email and password for an ID token.
type passwordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (uid, idToken string, err error)
}

type backend struct {
	admin    adminClient
	password passwordVerifier
	logger   *slog.Logger
}

// NewBackend connects to the Firebase project named in cfg.
func NewBackend(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (service.AuthService, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("backend.firebase.apiKey is required for password sign-in")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Identity Toolkit client")
	}

	return newBackend(client, &toolkitVerifier{svc: toolkit}, logger), nil
}

func newBackend(admin adminClient, password passwordVerifier, logger *slog.Logger) *backend {
	return &backend{
		admin:    admin,
		password: password,
		logger:   logger,
	}
}

func (b *backend) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	uid, idToken, err := b.password.VerifyPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, classifySignInError(err)
	}

	return &entity.Session{AccountID: uid, Token: idToken}, nil
}

// SignOut revokes every refresh token of the account, which also invalidates the session's ID token.
func (b *backend) SignOut(ctx context.Context, session *entity.Session) error {
	token, err := b.verify(ctx, session)
	if err != nil {
		return err
	}

	if err := b.admin.RevokeRefreshTokens(ctx, token.UID); err != nil {
		return domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, err)
	}

	return nil
}

func (b *backend) CreateAccount(ctx context.Context, email, password, name string) (*entity.AccountRef, error) {
	params := (&auth.UserToCreate{}).
		Email(strings.TrimSpace(email)).
		Password(password).
		DisplayName(strings.TrimSpace(name))

	record, err := b.admin.CreateUser(ctx, params)
	if err != nil {
		return nil, classifyAdminError(err)
	}

	b.logger.Debug("Firebase account created", slog.String("account_id", record.UID))

	return &entity.AccountRef{ID: record.UID, Email: record.Email, Name: record.DisplayName}, nil
}

func (b *backend) FetchCurrentProfile(ctx context.Context, session *entity.Session) (*entity.Profile, error) {
	token, err := b.verify(ctx, session)
	if err != nil {
		return nil, err
	}

	record, err := b.admin.GetUser(ctx, token.UID)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, nil
		}

		return nil, classifyAdminError(err)
	}

	return toProfile(record), nil
}

func (b *backend) UpdateProfile(ctx context.Context, session *entity.Session, update *entity.ProfileUpdate) (*entity.Profile, error) {
	token, err := b.verify(ctx, session)
	if err != nil {
		return nil, err
	}
	if update == nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("profile", "is required"))
	}

	params := (&auth.UserToUpdate{}).
		DisplayName(strings.TrimSpace(update.Name)).
		Email(strings.TrimSpace(update.Email)).
		CustomClaims(map[string]any{
			claimHomeAddress: strings.TrimSpace(update.HomeAddress),
			claimWorkAddress: strings.TrimSpace(update.WorkAddress),
		})
	// Firebase requires E.164; an empty value removes the number.
	params = params.PhoneNumber(strings.TrimSpace(update.Phone))

	record, err := b.admin.UpdateUser(ctx, token.UID, params)
	if err != nil {
		return nil, classifyAdminError(err)
	}

	return toProfile(record), nil
}

func (b *backend) verify(ctx context.Context, session *entity.Session) (*auth.Token, error) {
	if session == nil || session.Token == "" {
		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, errors.New("no session token"))
	}

	token, err := b.admin.VerifyIDTokenAndCheckRevoked(ctx, session.Token)
	if err != nil {
		switch {
		case auth.IsIDTokenExpired(err):
			return nil, domainerrors.NewAuthError(domainerrors.ErrSessionExpired, err)
		case auth.IsIDTokenRevoked(err), auth.IsIDTokenInvalid(err), auth.IsUserDisabled(err):
			return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, err)
		default:
			return nil, domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, err)
		}
	}

	if session.AccountID != "" && session.AccountID != token.UID {
		return nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, errors.New("session account does not match token"))
	}

	return token, nil
}

func toProfile(record *auth.UserRecord) *entity.Profile {
	if record == nil || record.UserInfo == nil {
		return nil
	}

	profile := &entity.Profile{
		ID:        record.UID,
		Name:      record.DisplayName,
		Email:     record.Email,
		Phone:     record.PhoneNumber,
		AvatarRef: record.PhotoURL,
	}
	if profile.AvatarRef == "" {
		profile.AvatarRef = entity.InitialsAvatar(profile.Name)
	}
	if s, ok := record.CustomClaims[claimHomeAddress].(string); ok {
		profile.HomeAddress = s
	}
	if s, ok := record.CustomClaims[claimWorkAddress].(string); ok {
		profile.WorkAddress = s
	}

	return profile
}

func classifyAdminError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return domainerrors.NewAuthError(domainerrors.ErrAccountExists, err)
	case auth.IsUserNotFound(err):
		return domainerrors.NewAuthError(domainerrors.ErrProfileNotFound, err)
	case isInvalidArgument(err):
		return domainerrors.NewAuthError(domainerrors.ErrValidationFailed, err)
	default:
		return domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, err)
	}
}

// isInvalidArgument matches the admin SDK's rejection of malformed emails, weak passwords and phone numbers.
func isInvalidArgument(err error) bool {
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "invalid") || strings.Contains(msg, "weak_password") ||
		strings.Contains(msg, "must be")
}

// classifySignInError maps Identity Toolkit error messages to credential failures.
func classifySignInError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
		switch {
		case strings.Contains(apiErr.Message, "EMAIL_NOT_FOUND"),
			strings.Contains(apiErr.Message, "INVALID_PASSWORD"),
			strings.Contains(apiErr.Message, "INVALID_LOGIN_CREDENTIALS"),
			strings.Contains(apiErr.Message, "INVALID_EMAIL"):
			return domainerrors.NewAuthError(domainerrors.ErrInvalidCredentials, err)
		case strings.Contains(apiErr.Message, "USER_DISABLED"):
			return domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, err)
		}
	}

	return domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, err)
}

type toolkitVerifier struct {
	svc *identitytoolkit.Service
}

func (v *toolkitVerifier) VerifyPassword(ctx context.Context, email, password string) (string, string, error) {
	resp, err := v.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return "", "", errors.WithStack(err)
	}

	return resp.LocalId, resp.IdToken, nil
}
