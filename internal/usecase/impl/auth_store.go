package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	deliverycontext "ordering/internal/delivery/context"
	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/repository"
	"ordering/internal/domain/service"
	"ordering/internal/usecase"
	"ordering/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// authStore implements the AuthStore interface.
//
// Each transition takes a generation number in begin and may only settle through
// settle with that same number. Abandon bumps the generation, so completions of
// the abandoned call find a newer generation and are dropped.
type authStore struct {
	authService service.AuthService
	sessionRepo repository.SessionRepository
	logger      *slog.Logger
	validate    *validator.Validate
	observers   *broadcaster[entity.AuthSnapshot]

	// persistMu orders session writes, so a discarded login cannot overwrite a later clear.
	persistMu sync.Mutex
	// savedGen is the generation of the last transition that saved a session. Guarded by persistMu.
	savedGen uint64

	mu         sync.Mutex
	state      entity.AuthState
	inFlight   bool
	generation uint64
	session    *entity.Session
	profile    *entity.Profile
}

// NewAuthStore is the constructor for authStore. The store starts in Restoring.
func NewAuthStore(
	authService service.AuthService,
	sessionRepo repository.SessionRepository,
	logger *slog.Logger,
) usecase.AuthStore {
	return &authStore{
		authService: authService,
		sessionRepo: sessionRepo,
		logger:      logger,
		validate:    validation.New(),
		observers:   newBroadcaster[entity.AuthSnapshot](),
		state:       entity.AuthStateRestoring,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the store's logger.
func (s *authStore) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *authStore) Init(ctx context.Context) error {
	gen, err := s.begin(entity.AuthStateRestoring, entity.AuthStateRestoring)
	if err != nil {
		return err
	}

	session, err := s.sessionRepo.Load(ctx)
	if err != nil {
		s.log(ctx).Warn("Failed to load saved session, starting signed out", slog.Any("error", err))

		return s.settleSignedOut(ctx, gen, true)
	}
	if session == nil {
		s.log(ctx).Debug("No saved session")

		return s.settleSignedOut(ctx, gen, false)
	}

	profile, err := s.authService.FetchCurrentProfile(ctx, session)
	if err != nil {
		authErr := toAuthError(err)
		// An unreachable backend says nothing about the session, so keep it for the next start.
		keep := errors.Is(authErr, domainerrors.ErrAuthServiceUnavailable)
		s.log(ctx).Info("Saved session rejected, starting signed out",
			slog.Any("error", authErr),
			slog.Bool("session_kept", keep),
		)

		return s.settleSignedOut(ctx, gen, !keep)
	}
	if profile == nil {
		s.log(ctx).Info("Saved session has no profile, starting signed out")

		return s.settleSignedOut(ctx, gen, true)
	}

	if !s.settle(gen, func() {
		s.state = entity.AuthStateAuthenticated
		s.session = session
		s.profile = profile
	}) {
		return domainerrors.ErrTransitionAbandoned
	}

	s.log(ctx).Info("Session restored", slog.String("account_id", session.AccountID))

	return nil
}

func (s *authStore) Login(ctx context.Context, email, password string) error {
	if err := s.validateCredentials(email, password); err != nil {
		return err
	}

	gen, err := s.begin(entity.AuthStateUnauthenticated, entity.AuthStateAuthenticating)
	if err != nil {
		return err
	}

	return s.signIn(ctx, gen, email, password)
}

func (s *authStore) Register(ctx context.Context, email, password, name string) error {
	if err := s.validateCredentials(email, password); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("name", "is required"))
	}

	gen, err := s.begin(entity.AuthStateUnauthenticated, entity.AuthStateAuthenticating)
	if err != nil {
		return err
	}

	account, err := s.authService.CreateAccount(ctx, email, password, name)
	if err != nil {
		s.log(ctx).Info("Account creation failed", slog.Any("error", err))

		return s.fail(gen, toAuthError(err))
	}

	accountID := ""
	if account != nil {
		accountID = account.ID
	}
	s.log(ctx).Info("Account created", slog.String("account_id", accountID))

	if err := s.signIn(ctx, gen, email, password); err != nil {
		if !errors.Is(err, domainerrors.ErrTransitionAbandoned) {
			s.log(ctx).Warn("Sign-in after account creation failed, account exists without a local session",
				slog.String("account_id", accountID),
				slog.Any("error", err),
			)
		}

		return err
	}

	return nil
}

func (s *authStore) Logout(ctx context.Context) error {
	gen, err := s.begin(entity.AuthStateAuthenticated, entity.AuthStateLoggingOut)
	if err != nil {
		return err
	}

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if err := s.authService.SignOut(ctx, session); err != nil {
		s.log(ctx).Warn("Remote sign-out failed, clearing local session anyway", slog.Any("error", err))
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	// An abandoned logout still clears, unless a later sign-in has saved its own session.
	if s.savedGen <= gen {
		s.clearPersisted(ctx)
	}

	if !s.settle(gen, s.resetLocked) {
		return domainerrors.ErrTransitionAbandoned
	}

	s.log(ctx).Info("Signed out")

	return nil
}

func (s *authStore) UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.Profile, error) {
	if update == nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("profile", "is required"))
	}
	if err := s.validate.Struct(update); err != nil {
		return nil, domainerrors.NewAuthError(domainerrors.ErrValidationFailed, validation.ToValidationError(err))
	}

	gen, err := s.begin(entity.AuthStateAuthenticated, entity.AuthStateAuthenticated)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	profile, err := s.authService.UpdateProfile(ctx, session, update)
	if err != nil {
		s.log(ctx).Info("Profile update failed", slog.Any("error", err))

		return nil, s.keep(gen, toAuthError(err))
	}
	if profile == nil {
		return nil, s.keep(gen, domainerrors.NewAuthError(domainerrors.ErrProfileNotFound, nil))
	}

	updated := &entity.Session{AccountID: session.AccountID, Token: session.Token, Profile: profile.Clone()}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if !s.settle(gen, func() {
		s.session = updated
		s.profile = profile
	}) {
		return nil, domainerrors.ErrTransitionAbandoned
	}

	if err := s.sessionRepo.Save(ctx, updated); err != nil {
		s.log(ctx).Warn("Failed to persist updated profile", slog.Any("error", err))
	}
	s.savedGen = gen

	return profile.Clone(), nil
}

func (s *authStore) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inFlight {
		return
	}

	s.generation++
	s.inFlight = false
	// A profile edit runs while Authenticated; dropping it must not sign the user out.
	if s.state != entity.AuthStateAuthenticated {
		s.resetLocked()
	}
	s.publishLocked()
}

func (s *authStore) State() entity.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *authStore) Profile() *entity.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profile.Clone()
}

func (s *authStore) Snapshot() entity.AuthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *authStore) Subscribe() (<-chan entity.AuthSnapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.observers.subscribe(s.snapshotLocked())
}

// signIn runs the shared tail of Login and Register. Nothing is kept unless both the
// session and its profile were obtained.
func (s *authStore) signIn(ctx context.Context, gen uint64, email, password string) error {
	session, err := s.authService.SignIn(ctx, email, password)
	if err != nil {
		s.log(ctx).Info("Sign-in failed", slog.Any("error", err))

		return s.fail(gen, toAuthError(err))
	}
	if session == nil {
		return s.fail(gen, domainerrors.NewAuthError(domainerrors.ErrAuthFailed, errors.New("backend returned no session")))
	}
	if !s.isCurrent(gen) {
		s.signOutRemote(ctx, session)

		return domainerrors.ErrTransitionAbandoned
	}

	profile, err := s.authService.FetchCurrentProfile(ctx, session)
	if err != nil {
		s.log(ctx).Info("Profile fetch after sign-in failed", slog.Any("error", err))
		s.signOutRemote(ctx, session)

		return s.fail(gen, toAuthError(err))
	}
	if profile == nil {
		s.signOutRemote(ctx, session)

		return s.fail(gen, domainerrors.NewAuthError(domainerrors.ErrProfileNotFound, nil))
	}

	session = &entity.Session{AccountID: session.AccountID, Token: session.Token, Profile: profile.Clone()}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if !s.isCurrent(gen) {
		s.signOutRemote(ctx, session)

		return domainerrors.ErrTransitionAbandoned
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		s.log(ctx).Warn("Failed to persist session, it will not survive a restart", slog.Any("error", err))
	}

	if !s.settle(gen, func() {
		s.state = entity.AuthStateAuthenticated
		s.session = session
		s.profile = profile
	}) {
		// Abandoned while saving: take back what was just written.
		s.clearPersisted(ctx)
		s.signOutRemote(ctx, session)

		return domainerrors.ErrTransitionAbandoned
	}
	s.savedGen = gen

	s.log(ctx).Info("Signed in", slog.String("account_id", session.AccountID))

	return nil
}

// begin starts a transition from the settled state from, moving to to.
func (s *authStore) begin(from, to entity.AuthState) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.inFlight:
		return 0, domainerrors.ErrTransitionInFlight
	case s.state != from:
		return 0, domainerrors.ErrInvalidTransition.WrapMessage(
			"cannot start from " + s.state.String() + ", expected " + from.String())
	}

	s.generation++
	s.inFlight = true
	s.state = to
	s.publishLocked()

	return s.generation, nil
}

// settle applies fn and ends the transition if gen is still current.
// It reports false when the transition was abandoned.
func (s *authStore) settle(gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || !s.inFlight {
		return false
	}

	fn()
	s.inFlight = false
	s.publishLocked()

	return true
}

func (s *authStore) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return gen == s.generation && s.inFlight
}

// fail settles Unauthenticated and returns err, or ErrTransitionAbandoned if the call was abandoned.
func (s *authStore) fail(gen uint64, err error) error {
	if !s.settle(gen, s.resetLocked) {
		return domainerrors.ErrTransitionAbandoned
	}

	return err
}

// keep ends a transition without changing state and returns err.
func (s *authStore) keep(gen uint64, err error) error {
	if !s.settle(gen, func() {}) {
		return domainerrors.ErrTransitionAbandoned
	}

	return err
}

// settleSignedOut ends a restore as Unauthenticated, optionally clearing the saved session first.
func (s *authStore) settleSignedOut(ctx context.Context, gen uint64, clearSaved bool) error {
	if clearSaved {
		s.persistMu.Lock()
		defer s.persistMu.Unlock()

		if !s.isCurrent(gen) {
			return domainerrors.ErrTransitionAbandoned
		}
		s.clearPersisted(ctx)
	}

	if !s.settle(gen, s.resetLocked) {
		return domainerrors.ErrTransitionAbandoned
	}

	return nil
}

// signOutRemote closes a remote session the store will not keep. Failures are only logged.
func (s *authStore) signOutRemote(ctx context.Context, session *entity.Session) {
	if err := s.authService.SignOut(ctx, session); err != nil {
		s.log(ctx).Warn("Failed to close unused remote session", slog.Any("error", err))
	}
}

// clearPersisted removes the saved session. Callers hold persistMu.
func (s *authStore) clearPersisted(ctx context.Context) {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		s.log(ctx).Warn("Failed to clear saved session", slog.Any("error", err))
	}
}

func (s *authStore) resetLocked() {
	s.state = entity.AuthStateUnauthenticated
	s.session = nil
	s.profile = nil
}

func (s *authStore) snapshotLocked() entity.AuthSnapshot {
	return entity.AuthSnapshot{
		State:           s.state,
		IsAuthenticated: s.state == entity.AuthStateAuthenticated,
		IsLoading:       s.inFlight || !s.state.IsTerminal(),
		Profile:         s.profile.Clone(),
	}
}

func (s *authStore) publishLocked() {
	s.observers.publish(s.snapshotLocked())
}

func (s *authStore) validateCredentials(email, password string) error {
	if err := s.validate.Var(strings.TrimSpace(email), "required"); err != nil {
		return domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("email", "is required"))
	}
	if password == "" {
		return domainerrors.NewAuthError(domainerrors.ErrValidationFailed,
			domainerrors.NewValidationError("password", "is required"))
	}

	return nil
}

// toAuthError classifies backend failures that are not already AuthErrors as an unreachable backend.
func toAuthError(err error) error {
	var authErr *domainerrors.AuthError
	if errors.As(err, &authErr) {
		return err
	}

	return domainerrors.NewAuthError(domainerrors.ErrAuthServiceUnavailable, err)
}
