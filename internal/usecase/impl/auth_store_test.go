package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/infra/persistence/memory"
	mockRepo "ordering/internal/mocks/repository"
	mockService "ordering/internal/mocks/service"
	"ordering/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "a@b.com"
	testPassword = "pw"
)

func testSession() *entity.Session {
	return &entity.Session{AccountID: "acc-1", Token: "tok-1"}
}

func testProfile() *entity.Profile {
	return &entity.Profile{ID: "acc-1", Name: "Ada Lovelace", Email: testEmail, AvatarRef: "initials:AL"}
}

func persistedSession() *entity.Session {
	s := testSession()
	s.Profile = testProfile()

	return s
}

type authFixture struct {
	store       usecase.AuthStore
	authService *mockService.MockAuthService
	sessionRepo *mockRepo.MockSessionRepository
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	authService := mockService.NewMockAuthService(t)
	sessionRepo := mockRepo.NewMockSessionRepository(t)

	return &authFixture{
		store:       NewAuthStore(authService, sessionRepo, newDiscardLogger()),
		authService: authService,
		sessionRepo: sessionRepo,
	}
}

// signedOut runs Init against an empty store so the fixture starts Unauthenticated.
func (f *authFixture) signedOut(t *testing.T) *authFixture {
	t.Helper()

	f.sessionRepo.EXPECT().Load(mock.Anything).Return(nil, nil).Once()
	require.NoError(t, f.store.Init(context.Background()))
	require.Equal(t, entity.AuthStateUnauthenticated, f.store.State())

	return f
}

// signedIn restores a valid session so the fixture starts Authenticated.
func (f *authFixture) signedIn(t *testing.T) *authFixture {
	t.Helper()

	f.sessionRepo.EXPECT().Load(mock.Anything).Return(persistedSession(), nil).Once()
	f.authService.EXPECT().FetchCurrentProfile(mock.Anything, persistedSession()).Return(testProfile(), nil).Once()
	require.NoError(t, f.store.Init(context.Background()))
	require.Equal(t, entity.AuthStateAuthenticated, f.store.State())

	return f
}

func TestAuthStore_StartsRestoring(t *testing.T) {
	f := newAuthFixture(t)

	snapshot := f.store.Snapshot()

	assert.Equal(t, entity.AuthStateRestoring, snapshot.State)
	assert.True(t, snapshot.IsLoading)
	assert.False(t, snapshot.IsAuthenticated)
	assert.Nil(t, snapshot.Profile)
}

func TestAuthStore_Init(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(f *authFixture)
		wantState entity.AuthState
	}{
		{
			name: "no saved session does not touch the backend",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).Return(nil, nil).Once()
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name: "valid session restores profile",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).Return(persistedSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).Return(testProfile(), nil).Once()
			},
			wantState: entity.AuthStateAuthenticated,
		},
		{
			name: "expired session is cleared",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).Return(persistedSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).
					Return(nil, domainerrors.NewAuthError(domainerrors.ErrSessionExpired, nil)).Once()
				f.sessionRepo.EXPECT().Clear(ctx).Return(nil).Once()
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name: "unreadable saved session is cleared",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).
					Return(nil, domainerrors.NewPersistenceError("load", errors.New("corrupt"))).Once()
				f.sessionRepo.EXPECT().Clear(ctx).Return(nil).Once()
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name: "missing profile is cleared",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).Return(persistedSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).Return(nil, nil).Once()
				f.sessionRepo.EXPECT().Clear(ctx).Return(nil).Once()
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name: "unreachable backend keeps the saved session",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).Return(persistedSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).
					Return(nil, errors.New("dial tcp: i/o timeout")).Once()
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name: "failed clear is not fatal",
			setup: func(f *authFixture) {
				f.sessionRepo.EXPECT().Load(ctx).Return(persistedSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).
					Return(nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, nil)).Once()
				f.sessionRepo.EXPECT().Clear(ctx).
					Return(domainerrors.NewPersistenceError("clear", errors.New("read-only"))).Once()
			},
			wantState: entity.AuthStateUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			err := f.store.Init(ctx)

			require.NoError(t, err)
			snapshot := f.store.Snapshot()
			assert.Equal(t, tt.wantState, snapshot.State)
			assert.False(t, snapshot.IsLoading)
			if tt.wantState == entity.AuthStateAuthenticated {
				assert.Equal(t, testProfile(), snapshot.Profile)
			} else {
				assert.Nil(t, snapshot.Profile)
			}
		})
	}
}

func TestAuthStore_InitOnlyOnce(t *testing.T) {
	f := newAuthFixture(t).signedOut(t)

	err := f.store.Init(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestAuthStore_LoginBeforeInitRejected(t *testing.T) {
	f := newAuthFixture(t)

	err := f.store.Login(context.Background(), testEmail, testPassword)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	assert.NotErrorIs(t, err, domainerrors.ErrTransitionInFlight)
	assert.Equal(t, entity.AuthStateRestoring, f.store.State())
}

func TestAuthStore_LoginThenLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
	f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, persistedSession()).Return(nil).Once()

	require.NoError(t, f.store.Login(ctx, testEmail, testPassword))

	snapshot := f.store.Snapshot()
	assert.Equal(t, entity.AuthStateAuthenticated, snapshot.State)
	assert.True(t, snapshot.IsAuthenticated)
	assert.Equal(t, testProfile(), snapshot.Profile)

	// Remote sign-out fails; local state is cleared regardless.
	f.authService.EXPECT().SignOut(ctx, persistedSession()).Return(errors.New("network down")).Once()
	f.sessionRepo.EXPECT().Clear(ctx).Return(nil).Once()

	require.NoError(t, f.store.Logout(ctx))

	assert.Equal(t, entity.AuthStateUnauthenticated, f.store.State())
	assert.Nil(t, f.store.Profile())
}

func TestAuthStore_LoginFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(f *authFixture)
		kind  error
	}{
		{
			name: "bad credentials",
			setup: func(f *authFixture) {
				f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).
					Return(nil, domainerrors.NewAuthError(domainerrors.ErrInvalidCredentials, nil)).Once()
			},
			kind: domainerrors.ErrInvalidCredentials,
		},
		{
			name: "unclassified backend error",
			setup: func(f *authFixture) {
				f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).
					Return(nil, errors.New("connection refused")).Once()
			},
			kind: domainerrors.ErrAuthServiceUnavailable,
		},
		{
			name: "profile fetch fails",
			setup: func(f *authFixture) {
				f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).
					Return(nil, domainerrors.NewAuthError(domainerrors.ErrSessionInvalid, nil)).Once()
				f.authService.EXPECT().SignOut(ctx, testSession()).Return(nil).Once()
			},
			kind: domainerrors.ErrSessionInvalid,
		},
		{
			name: "profile absent",
			setup: func(f *authFixture) {
				f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
				f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(nil, nil).Once()
				// The unused remote session is closed; a failure there does not change the outcome.
				f.authService.EXPECT().SignOut(ctx, testSession()).Return(errors.New("network down")).Once()
			},
			kind: domainerrors.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t).signedOut(t)
			tt.setup(f)

			err := f.store.Login(ctx, testEmail, testPassword)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var authErr *domainerrors.AuthError
			assert.ErrorAs(t, err, &authErr)

			snapshot := f.store.Snapshot()
			assert.Equal(t, entity.AuthStateUnauthenticated, snapshot.State)
			assert.False(t, snapshot.IsLoading)
			assert.Nil(t, snapshot.Profile)
		})
	}
}

func TestAuthStore_LoginSaveFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
	f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, persistedSession()).
		Return(domainerrors.NewPersistenceError("save", errors.New("disk full"))).Once()

	require.NoError(t, f.store.Login(ctx, testEmail, testPassword))

	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
}

func TestAuthStore_LoginValidation(t *testing.T) {
	f := newAuthFixture(t).signedOut(t)

	err := f.store.Login(context.Background(), " ", testPassword)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	err = f.store.Login(context.Background(), testEmail, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	assert.Equal(t, entity.AuthStateUnauthenticated, f.store.State())
}

func TestAuthStore_SecondLoginWhilePendingRejected(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).
		RunAndReturn(func(context.Context, string, string) (*entity.Session, error) {
			close(started)
			<-release

			return testSession(), nil
		}).Once()
	f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, persistedSession()).Return(nil).Once()

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = f.store.Login(ctx, testEmail, testPassword)
	}()
	<-started

	snapshot := f.store.Snapshot()
	assert.Equal(t, entity.AuthStateAuthenticating, snapshot.State)
	assert.True(t, snapshot.IsLoading)

	assert.ErrorIs(t, f.store.Login(ctx, "other@b.com", "other"), domainerrors.ErrTransitionInFlight)
	assert.ErrorIs(t, f.store.Register(ctx, "other@b.com", "other", "Other"), domainerrors.ErrTransitionInFlight)
	assert.ErrorIs(t, f.store.Logout(ctx), domainerrors.ErrTransitionInFlight)

	close(release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
	assert.Equal(t, testProfile(), f.store.Profile())
}

func TestAuthStore_AbandonDiscardsStaleLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.authService.EXPECT().SignIn(ctx, "slow@b.com", testPassword).
		RunAndReturn(func(context.Context, string, string) (*entity.Session, error) {
			close(started)
			<-release

			return &entity.Session{AccountID: "acc-slow", Token: "tok-slow"}, nil
		}).Once()

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleErr = f.store.Login(ctx, "slow@b.com", testPassword)
	}()
	<-started

	f.store.Abandon()
	assert.Equal(t, entity.AuthStateUnauthenticated, f.store.State())
	f.authService.EXPECT().SignOut(ctx, &entity.Session{AccountID: "acc-slow", Token: "tok-slow"}).Return(nil).Once()

	// A fresh login is allowed and settles first.
	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
	f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, persistedSession()).Return(nil).Once()
	require.NoError(t, f.store.Login(ctx, testEmail, testPassword))

	close(release)
	wg.Wait()

	assert.ErrorIs(t, staleErr, domainerrors.ErrTransitionAbandoned)
	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
	assert.Equal(t, "acc-1", f.store.Profile().ID, "stale completion did not overwrite the newer login")
}

func TestAuthStore_AbandonMidTransition(t *testing.T) {
	ctx := context.Background()
	edited := testProfile()
	edited.Name = "Augusta King"
	update := &entity.ProfileUpdate{Name: "Augusta King", Email: testEmail}

	tests := []struct {
		name string
		// saved is what the session store holds before the store is created.
		saved *entity.Session
		// setup blocks the transition's remote call until release is closed.
		setup       func(svc *mockService.MockAuthService, started chan<- struct{}, release <-chan struct{})
		run         func(store usecase.AuthStore) error
		wantState   entity.AuthState
		wantProfile *entity.Profile
		wantSaved   *entity.Session
	}{
		{
			name:  "restore keeps the saved session for the next start",
			saved: persistedSession(),
			setup: func(svc *mockService.MockAuthService, started chan<- struct{}, release <-chan struct{}) {
				svc.EXPECT().FetchCurrentProfile(ctx, persistedSession()).
					RunAndReturn(func(context.Context, *entity.Session) (*entity.Profile, error) {
						close(started)
						<-release

						return testProfile(), nil
					}).Once()
			},
			run:       func(store usecase.AuthStore) error { return store.Init(ctx) },
			wantState: entity.AuthStateUnauthenticated,
			wantSaved: persistedSession(),
		},
		{
			name: "login saves nothing and closes the remote session",
			setup: func(svc *mockService.MockAuthService, started chan<- struct{}, release <-chan struct{}) {
				svc.EXPECT().SignIn(ctx, testEmail, testPassword).
					RunAndReturn(func(context.Context, string, string) (*entity.Session, error) {
						close(started)
						<-release

						return testSession(), nil
					}).Once()
				svc.EXPECT().SignOut(ctx, testSession()).Return(nil).Once()
			},
			run: func(store usecase.AuthStore) error {
				if err := store.Init(ctx); err != nil {
					return err
				}

				return store.Login(ctx, testEmail, testPassword)
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name:  "logout still clears the saved session",
			saved: persistedSession(),
			setup: func(svc *mockService.MockAuthService, started chan<- struct{}, release <-chan struct{}) {
				svc.EXPECT().FetchCurrentProfile(ctx, persistedSession()).Return(testProfile(), nil).Once()
				svc.EXPECT().SignOut(ctx, persistedSession()).
					RunAndReturn(func(context.Context, *entity.Session) error {
						close(started)
						<-release

						return nil
					}).Once()
			},
			run: func(store usecase.AuthStore) error {
				if err := store.Init(ctx); err != nil {
					return err
				}

				return store.Logout(ctx)
			},
			wantState: entity.AuthStateUnauthenticated,
		},
		{
			name:  "profile edit keeps the user signed in",
			saved: persistedSession(),
			setup: func(svc *mockService.MockAuthService, started chan<- struct{}, release <-chan struct{}) {
				svc.EXPECT().FetchCurrentProfile(ctx, persistedSession()).Return(testProfile(), nil).Once()
				svc.EXPECT().UpdateProfile(ctx, persistedSession(), update).
					RunAndReturn(func(context.Context, *entity.Session, *entity.ProfileUpdate) (*entity.Profile, error) {
						close(started)
						<-release

						return edited, nil
					}).Once()
			},
			run: func(store usecase.AuthStore) error {
				if err := store.Init(ctx); err != nil {
					return err
				}
				_, err := store.UpdateProfile(ctx, update)

				return err
			},
			wantState:   entity.AuthStateAuthenticated,
			wantProfile: testProfile(),
			wantSaved:   persistedSession(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewSessionRepository()
			if tt.saved != nil {
				require.NoError(t, repo.Save(ctx, tt.saved))
			}
			authService := mockService.NewMockAuthService(t)
			started := make(chan struct{})
			release := make(chan struct{})
			tt.setup(authService, started, release)

			store := NewAuthStore(authService, repo, newDiscardLogger())

			var wg sync.WaitGroup
			var staleErr error
			wg.Add(1)
			go func() {
				defer wg.Done()
				staleErr = tt.run(store)
			}()
			<-started

			store.Abandon()
			assert.Equal(t, tt.wantState, store.State(), "state right after abandon")

			close(release)
			wg.Wait()

			assert.ErrorIs(t, staleErr, domainerrors.ErrTransitionAbandoned)
			snapshot := store.Snapshot()
			assert.Equal(t, tt.wantState, snapshot.State)
			assert.Equal(t, tt.wantProfile, snapshot.Profile)
			assert.False(t, snapshot.IsLoading)

			saved, err := repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSaved, saved)
		})
	}
}

func TestAuthStore_AbandonedProfileEditSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	require.NoError(t, repo.Save(ctx, persistedSession()))
	authService := mockService.NewMockAuthService(t)
	update := &entity.ProfileUpdate{Name: "Augusta King", Email: testEmail}

	started := make(chan struct{})
	release := make(chan struct{})
	authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).Return(testProfile(), nil).Times(2)
	authService.EXPECT().UpdateProfile(ctx, persistedSession(), update).
		RunAndReturn(func(context.Context, *entity.Session, *entity.ProfileUpdate) (*entity.Profile, error) {
			close(started)
			<-release

			return nil, errors.New("too late")
		}).Once()

	store := NewAuthStore(authService, repo, newDiscardLogger())
	require.NoError(t, store.Init(ctx))

	done := make(chan error, 1)
	go func() {
		_, err := store.UpdateProfile(ctx, update)
		done <- err
	}()
	<-started
	store.Abandon()
	close(release)
	assert.ErrorIs(t, <-done, domainerrors.ErrTransitionAbandoned)

	// The local state agrees with what a restart restores.
	assert.Equal(t, entity.AuthStateAuthenticated, store.State())
	assert.Equal(t, testProfile(), store.Profile())

	restarted := NewAuthStore(authService, repo, newDiscardLogger())
	require.NoError(t, restarted.Init(ctx))
	assert.Equal(t, entity.AuthStateAuthenticated, restarted.State())

	// The user can still sign out normally.
	authService.EXPECT().SignOut(ctx, persistedSession()).Return(nil).Once()
	require.NoError(t, store.Logout(ctx))
	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestAuthStore_AbandonedLogoutKeepsNewerLogin(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	require.NoError(t, repo.Save(ctx, persistedSession()))
	authService := mockService.NewMockAuthService(t)

	started := make(chan struct{})
	release := make(chan struct{})
	authService.EXPECT().FetchCurrentProfile(ctx, persistedSession()).Return(testProfile(), nil).Once()
	authService.EXPECT().SignOut(ctx, persistedSession()).
		RunAndReturn(func(context.Context, *entity.Session) error {
			close(started)
			<-release

			return nil
		}).Once()

	store := NewAuthStore(authService, repo, newDiscardLogger())
	require.NoError(t, store.Init(ctx))

	done := make(chan error, 1)
	go func() { done <- store.Logout(ctx) }()
	<-started
	store.Abandon()

	newer := &entity.Session{AccountID: "acc-2", Token: "tok-2"}
	newerProfile := &entity.Profile{ID: "acc-2", Name: "Grace", Email: "g@b.com"}
	authService.EXPECT().SignIn(ctx, "g@b.com", testPassword).Return(newer, nil).Once()
	authService.EXPECT().FetchCurrentProfile(ctx, newer).Return(newerProfile, nil).Once()
	require.NoError(t, store.Login(ctx, "g@b.com", testPassword))

	close(release)
	assert.ErrorIs(t, <-done, domainerrors.ErrTransitionAbandoned)

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved, "the stale logout must not clear the newer session")
	assert.Equal(t, "acc-2", saved.AccountID)
	assert.Equal(t, entity.AuthStateAuthenticated, store.State())
}

func TestAuthStore_AbandonWithoutTransitionIsNoOp(t *testing.T) {
	f := newAuthFixture(t).signedIn(t)

	f.store.Abandon()

	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
	assert.NotNil(t, f.store.Profile())
}

func TestAuthStore_Register(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	f.authService.EXPECT().CreateAccount(ctx, testEmail, testPassword, "Ada Lovelace").
		Return(&entity.AccountRef{ID: "acc-1", Email: testEmail, Name: "Ada Lovelace"}, nil).Once()
	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
	f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, persistedSession()).Return(nil).Once()

	require.NoError(t, f.store.Register(ctx, testEmail, testPassword, "Ada Lovelace"))

	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
}

func TestAuthStore_RegisterAccountExists(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	f.authService.EXPECT().CreateAccount(ctx, testEmail, testPassword, "Ada").
		Return(nil, domainerrors.NewAuthError(domainerrors.ErrAccountExists, nil)).Once()

	err := f.store.Register(ctx, testEmail, testPassword, "Ada")

	assert.ErrorIs(t, err, domainerrors.ErrAccountExists)
	assert.Equal(t, entity.AuthStateUnauthenticated, f.store.State())
}

func TestAuthStore_RegisterSignInFailsIsNotRetried(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)

	f.authService.EXPECT().CreateAccount(ctx, testEmail, testPassword, "Ada").
		Return(&entity.AccountRef{ID: "acc-1"}, nil).Once()
	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).
		Return(nil, domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, nil)).Once()

	err := f.store.Register(ctx, testEmail, testPassword, "Ada")

	assert.ErrorIs(t, err, domainerrors.ErrAuthServiceUnavailable)
	assert.Equal(t, entity.AuthStateUnauthenticated, f.store.State())
	f.authService.AssertNumberOfCalls(t, "SignIn", 1)
}

func TestAuthStore_RegisterRequiresName(t *testing.T) {
	f := newAuthFixture(t).signedOut(t)

	err := f.store.Register(context.Background(), testEmail, testPassword, "  ")

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthStore_WrongStateRejected(t *testing.T) {
	ctx := context.Background()

	signedOut := newAuthFixture(t).signedOut(t)
	assert.ErrorIs(t, signedOut.store.Logout(ctx), domainerrors.ErrInvalidTransition)
	_, err := signedOut.store.UpdateProfile(ctx, &entity.ProfileUpdate{Name: "A", Email: testEmail})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	signedIn := newAuthFixture(t).signedIn(t)
	assert.ErrorIs(t, signedIn.store.Login(ctx, testEmail, testPassword), domainerrors.ErrInvalidTransition)
	assert.ErrorIs(t, signedIn.store.Register(ctx, testEmail, testPassword, "Ada"), domainerrors.ErrInvalidTransition)
}

func TestAuthStore_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedIn(t)

	update := &entity.ProfileUpdate{Name: "Augusta King", Email: testEmail, HomeAddress: "12 St James's Square"}
	updated := testProfile()
	updated.Name = "Augusta King"
	updated.HomeAddress = "12 St James's Square"

	f.authService.EXPECT().UpdateProfile(ctx, persistedSession(), update).Return(updated, nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, &entity.Session{AccountID: "acc-1", Token: "tok-1", Profile: updated}).Return(nil).Once()

	got, err := f.store.UpdateProfile(ctx, update)

	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, updated, f.store.Profile())
	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
}

func TestAuthStore_UpdateProfileFailureKeepsProfile(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedIn(t)
	update := &entity.ProfileUpdate{Name: "Augusta King", Email: "taken@b.com"}

	f.authService.EXPECT().UpdateProfile(ctx, persistedSession(), update).
		Return(nil, domainerrors.NewAuthError(domainerrors.ErrAccountExists, nil)).Once()

	_, err := f.store.UpdateProfile(ctx, update)

	assert.ErrorIs(t, err, domainerrors.ErrAccountExists)
	assert.Equal(t, entity.AuthStateAuthenticated, f.store.State())
	assert.Equal(t, testProfile(), f.store.Profile())
	assert.False(t, f.store.Snapshot().IsLoading)
}

func TestAuthStore_UpdateProfileValidation(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedIn(t)

	_, err := f.store.UpdateProfile(ctx, &entity.ProfileUpdate{Name: "Ada", Email: "not-an-email"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var validationErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "email", validationErr.Field)

	_, err = f.store.UpdateProfile(ctx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthStore_LogoutClearsPersistenceAcrossRestart(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	authService := mockService.NewMockAuthService(t)

	authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
	authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	authService.EXPECT().SignOut(ctx, mock.Anything).Return(nil).Once()

	store := NewAuthStore(authService, repo, newDiscardLogger())
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Login(ctx, testEmail, testPassword))

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)

	require.NoError(t, store.Logout(ctx))
	assert.Equal(t, entity.AuthStateUnauthenticated, store.State())
	assert.Nil(t, store.Profile())

	restarted := NewAuthStore(authService, repo, newDiscardLogger())
	require.NoError(t, restarted.Init(ctx))
	assert.Equal(t, entity.AuthStateUnauthenticated, restarted.State())
}

func TestAuthStore_SubscribeSeesTransitions(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t).signedOut(t)
	updates, unsubscribe := f.store.Subscribe()
	defer unsubscribe()

	initial := <-updates
	assert.Equal(t, entity.AuthStateUnauthenticated, initial.State)

	f.authService.EXPECT().SignIn(ctx, testEmail, testPassword).Return(testSession(), nil).Once()
	f.authService.EXPECT().FetchCurrentProfile(ctx, testSession()).Return(testProfile(), nil).Once()
	f.sessionRepo.EXPECT().Save(ctx, persistedSession()).Return(nil).Once()
	require.NoError(t, f.store.Login(ctx, testEmail, testPassword))

	select {
	case latest := <-updates:
		assert.Equal(t, entity.AuthStateAuthenticated, latest.State)
		assert.True(t, latest.IsAuthenticated)
		assert.False(t, latest.IsLoading)
		assert.Equal(t, testProfile(), latest.Profile)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published")
	}
}
