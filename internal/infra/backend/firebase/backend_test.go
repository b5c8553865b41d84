package firebase

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type mockAdminClient struct {
	mock.Mock
}

func (m *mockAdminClient) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	args := m.Called(ctx, user)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func (m *mockAdminClient) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func (m *mockAdminClient) UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid, user)
	record, _ := args.Get(0).(*auth.UserRecord)

	return record, args.Error(1)
}

func (m *mockAdminClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockAdminClient) VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	token, _ := args.Get(0).(*auth.Token)

	return token, args.Error(1)
}

type mockPasswordVerifier struct {
	mock.Mock
}

func (m *mockPasswordVerifier) VerifyPassword(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)

	return args.String(0), args.String(1), args.Error(2)
}

func newTestBackend(t *testing.T) (*backend, *mockAdminClient, *mockPasswordVerifier) {
	t.Helper()

	admin := &mockAdminClient{}
	verifier := &mockPasswordVerifier{}
	t.Cleanup(func() {
		admin.AssertExpectations(t)
		verifier.AssertExpectations(t)
	})

	return newBackend(admin, verifier, slog.New(slog.NewTextHandler(io.Discard, nil))), admin, verifier
}

func userRecord(uid, name, email string, claims map[string]any) *auth.UserRecord {
	return &auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID:         uid,
			DisplayName: name,
			Email:       email,
		},
		CustomClaims: claims,
	}
}

func TestBackend_SignIn(t *testing.T) {
	ctx := context.Background()
	b, _, verifier := newTestBackend(t)
	verifier.On("VerifyPassword", ctx, "ada@example.com", "Secret123").Return("uid-1", "id-token", nil).Once()

	session, err := b.SignIn(ctx, " ada@example.com ", "Secret123")

	require.NoError(t, err)
	assert.Equal(t, &entity.Session{AccountID: "uid-1", Token: "id-token"}, session)
}

func TestClassifySignInError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "invalid password", err: &googleapi.Error{Code: http.StatusBadRequest, Message: "INVALID_PASSWORD"}, kind: domainerrors.ErrInvalidCredentials},
		{name: "unknown email", err: &googleapi.Error{Code: http.StatusBadRequest, Message: "EMAIL_NOT_FOUND"}, kind: domainerrors.ErrInvalidCredentials},
		{name: "combined credentials", err: errors.WithStack(&googleapi.Error{Code: http.StatusBadRequest, Message: "INVALID_LOGIN_CREDENTIALS"}), kind: domainerrors.ErrInvalidCredentials},
		{name: "disabled", err: &googleapi.Error{Code: http.StatusBadRequest, Message: "USER_DISABLED"}, kind: domainerrors.ErrSessionInvalid},
		{name: "server error", err: &googleapi.Error{Code: http.StatusInternalServerError, Message: "boom"}, kind: domainerrors.ErrAuthServiceUnavailable},
		{name: "network", err: errors.New("dial tcp: timeout"), kind: domainerrors.ErrAuthServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifySignInError(tt.err)

			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBackend_CreateAccount(t *testing.T) {
	ctx := context.Background()
	b, admin, _ := newTestBackend(t)
	admin.On("CreateUser", ctx, mock.AnythingOfType("*auth.UserToCreate")).
		Return(userRecord("uid-1", "Ada", "ada@example.com", nil), nil).Once()

	ref, err := b.CreateAccount(ctx, "ada@example.com", "Secret123", "Ada")

	require.NoError(t, err)
	assert.Equal(t, &entity.AccountRef{ID: "uid-1", Email: "ada@example.com", Name: "Ada"}, ref)
}

func TestBackend_CreateAccountBackendDown(t *testing.T) {
	ctx := context.Background()
	b, admin, _ := newTestBackend(t)
	admin.On("CreateUser", ctx, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	ref, err := b.CreateAccount(ctx, "ada@example.com", "Secret123", "Ada")

	assert.Nil(t, ref)
	assert.ErrorIs(t, err, domainerrors.ErrAuthServiceUnavailable)
}

func TestBackend_FetchCurrentProfile(t *testing.T) {
	ctx := context.Background()
	b, admin, _ := newTestBackend(t)
	session := &entity.Session{AccountID: "uid-1", Token: "id-token"}
	admin.On("VerifyIDTokenAndCheckRevoked", ctx, "id-token").Return(&auth.Token{UID: "uid-1"}, nil).Once()
	admin.On("GetUser", ctx, "uid-1").Return(userRecord("uid-1", "Ada Lovelace", "ada@example.com", map[string]any{
		claimHomeAddress: "12 St James's Square",
	}), nil).Once()

	profile, err := b.FetchCurrentProfile(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, &entity.Profile{
		ID:          "uid-1",
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		HomeAddress: "12 St James's Square",
		AvatarRef:   "initials:AL",
	}, profile)
}

func TestBackend_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	b, admin, _ := newTestBackend(t)
	admin.On("VerifyIDTokenAndCheckRevoked", ctx, "other-token").Return(&auth.Token{UID: "uid-2"}, nil).Once()
	admin.On("VerifyIDTokenAndCheckRevoked", ctx, "flaky-token").Return(nil, errors.New("certificate fetch failed")).Once()

	_, err := b.FetchCurrentProfile(ctx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)

	_, err = b.FetchCurrentProfile(ctx, &entity.Session{AccountID: "uid-1", Token: "other-token"})
	assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)

	_, err = b.FetchCurrentProfile(ctx, &entity.Session{AccountID: "uid-1", Token: "flaky-token"})
	assert.ErrorIs(t, err, domainerrors.ErrAuthServiceUnavailable)
}

func TestBackend_SignOutRevokes(t *testing.T) {
	ctx := context.Background()
	b, admin, _ := newTestBackend(t)
	admin.On("VerifyIDTokenAndCheckRevoked", ctx, "id-token").Return(&auth.Token{UID: "uid-1"}, nil).Once()
	admin.On("RevokeRefreshTokens", ctx, "uid-1").Return(nil).Once()

	err := b.SignOut(ctx, &entity.Session{AccountID: "uid-1", Token: "id-token"})

	require.NoError(t, err)
}

func TestBackend_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	b, admin, _ := newTestBackend(t)
	session := &entity.Session{AccountID: "uid-1", Token: "id-token"}
	admin.On("VerifyIDTokenAndCheckRevoked", ctx, "id-token").Return(&auth.Token{UID: "uid-1"}, nil).Once()
	admin.On("UpdateUser", ctx, "uid-1", mock.AnythingOfType("*auth.UserToUpdate")).
		Return(userRecord("uid-1", "Augusta King", "augusta@example.com", map[string]any{claimWorkAddress: "Analytical Engine Works"}), nil).Once()

	profile, err := b.UpdateProfile(ctx, session, &entity.ProfileUpdate{
		Name:        "Augusta King",
		Email:       "augusta@example.com",
		WorkAddress: "Analytical Engine Works",
	})

	require.NoError(t, err)
	assert.Equal(t, "Augusta King", profile.Name)
	assert.Equal(t, "Analytical Engine Works", profile.WorkAddress)
	assert.Equal(t, "initials:AK", profile.AvatarRef)
}

func TestToProfile_Nil(t *testing.T) {
	assert.Nil(t, toProfile(nil))
	assert.Nil(t, toProfile(&auth.UserRecord{}))
}
