// Package postgres stores the session blob in a key/value table through GORM.
package postgres

import (
	"context"
	"time"

	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/repository"
	"ordering/internal/errors"
	"ordering/internal/infra/persistence/codec"
	"ordering/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepository struct {
	db  *gorm.DB
	key string
}

// NewSessionRepository stores the blob in the row identified by key.
func NewSessionRepository(db *gorm.DB, key string) repository.SessionRepository {
	if key == "" {
		key = repository.DefaultSessionKey
	}

	return &sessionRepository{
		db:  db,
		key: key,
	}
}

func (repo *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	data, err := codec.EncodeSession(session)
	if err != nil {
		return domainerrors.NewPersistenceError("save", err)
	}

	row := &model.SessionModel{
		Key:       repo.key,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}

	err = repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewPersistenceError("save", errors.Wrap(err, "missing session payload"))
		}

		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "upsert session row"))
	}

	return nil
}

func (repo *sessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	var row model.SessionModel
	err := repo.db.WithContext(ctx).Where("key = ?", repo.key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.NewPersistenceError("load", errors.Wrap(err, "select session row"))
	}

	session, err := codec.DecodeSession(row.Payload)
	if err != nil {
		return nil, domainerrors.NewPersistenceError("load", err)
	}

	return session, nil
}

func (repo *sessionRepository) Clear(ctx context.Context) error {
	err := repo.db.WithContext(ctx).Where("key = ?", repo.key).Delete(&model.SessionModel{}).Error
	if err != nil {
		return domainerrors.NewPersistenceError("clear", errors.Wrap(err, "delete session row"))
	}

	return nil
}
