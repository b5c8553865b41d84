// Package memory keeps the session blob in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/repository"
	"ordering/internal/infra/persistence/codec"
)

type sessionRepository struct {
	mu   sync.RWMutex
	blob []byte
}

// NewSessionRepository creates an empty in-memory session store.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{}
}

// Save stores an encoded copy, so later changes to the caller's session are not visible here.
func (r *sessionRepository) Save(_ context.Context, session *entity.Session) error {
	data, err := codec.EncodeSession(session)
	if err != nil {
		return domainerrors.NewPersistenceError("save", err)
	}

	r.mu.Lock()
	r.blob = data
	r.mu.Unlock()

	return nil
}

func (r *sessionRepository) Load(_ context.Context) (*entity.Session, error) {
	r.mu.RLock()
	data := r.blob
	r.mu.RUnlock()

	session, err := codec.DecodeSession(data)
	if err != nil {
		return nil, domainerrors.NewPersistenceError("load", err)
	}

	return session, nil
}

func (r *sessionRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	r.blob = nil
	r.mu.Unlock()

	return nil
}
