package usecase

import (
	"context"

	"ordering/internal/domain/entity"
)

// AuthStore owns the authentication state machine.
//
// At most one transition runs at a time. A call made while another is in flight
// fails with ErrTransitionInFlight; a call made from the wrong state, including
// any sign-in before Init, fails with ErrInvalidTransition. Remote rejections are returned as *errors.AuthError
// and always leave the store Unauthenticated (or, for UpdateProfile, unchanged).
type AuthStore interface {
	// Init restores a persisted session. Valid only once, from Restoring. It never fails
	// because of the stored session: any problem resolves to Unauthenticated.
	Init(ctx context.Context) error

	Login(ctx context.Context, email, password string) error

	// Register creates the account and then signs in with the same credentials.
	// If the sign-in fails the account still exists remotely; nothing is retried.
	Register(ctx context.Context, email, password, name string) error

	// Logout always ends Unauthenticated with the persisted session cleared.
	// A failed remote sign-out is logged, not returned.
	Logout(ctx context.Context) error

	// UpdateProfile replaces the editable profile fields. Valid only while Authenticated.
	UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.Profile, error)

	// Abandon discards the in-flight transition, if any. An abandoned profile edit leaves the
	// user Authenticated with the previous profile; any other abandoned transition settles
	// Unauthenticated. The abandoned call returns ErrTransitionAbandoned when its remote work completes.
	Abandon()

	State() entity.AuthState
	Profile() *entity.Profile
	Snapshot() entity.AuthSnapshot

	// Subscribe returns a channel that always holds the latest snapshot, starting with the current one.
	// Call the returned func to stop receiving; it closes the channel.
	Subscribe() (<-chan entity.AuthSnapshot, func())
}
