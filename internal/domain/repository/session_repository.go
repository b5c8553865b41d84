// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"ordering/internal/domain/entity"
)

// DefaultSessionKey is the fixed key the session blob is stored under.
const DefaultSessionKey = "ordering_session"

// SessionRepository durably stores the single device session as one opaque blob.
// Failures are reported as *errors.PersistenceError.
type SessionRepository interface {
	// Save replaces the stored session.
	Save(ctx context.Context, session *entity.Session) error

	// Load returns the stored session, or (nil, nil) when none is stored.
	Load(ctx context.Context) (*entity.Session, error)

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
