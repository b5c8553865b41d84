// Package file stores the session blob as a single JSON file on local disk.
package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/repository"
	"ordering/internal/errors"
	"ordering/internal/infra/persistence/codec"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

type sessionRepository struct {
	mu   sync.Mutex
	path string
}

// NewSessionRepository stores the session at <dir>/<key>.json. The directory is created on first save.
func NewSessionRepository(dir, key string) (repository.SessionRepository, error) {
	if dir == "" {
		return nil, errors.New("session file directory is required")
	}
	if key == "" {
		key = repository.DefaultSessionKey
	}

	return &sessionRepository{
		path: filepath.Join(dir, key+".json"),
	}, nil
}

// Save writes to a temp file and renames it over the old blob so a crash never leaves half a session.
func (r *sessionRepository) Save(_ context.Context, session *entity.Session) error {
	data, err := codec.EncodeSession(session)
	if err != nil {
		return domainerrors.NewPersistenceError("save", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "create session directory"))
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "create temp file"))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "write temp file"))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "close temp file"))
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)

		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "chmod temp file"))
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)

		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "replace session file"))
	}

	return nil
}

func (r *sessionRepository) Load(_ context.Context) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, domainerrors.NewPersistenceError("load", errors.Wrap(err, "read session file"))
	}

	session, err := codec.DecodeSession(data)
	if err != nil {
		return nil, domainerrors.NewPersistenceError("load", err)
	}

	return session, nil
}

func (r *sessionRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return domainerrors.NewPersistenceError("clear", errors.Wrap(err, "remove session file"))
	}

	return nil
}
