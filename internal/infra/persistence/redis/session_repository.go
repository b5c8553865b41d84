// Package redis stores the session blob under a single redis key.
package redis

import (
	"context"
	"fmt"

	"ordering/config"
	"ordering/internal/domain/entity"
	domainerrors "ordering/internal/domain/errors"
	"ordering/internal/domain/repository"
	"ordering/internal/errors"
	"ordering/internal/infra/persistence/codec"

	"github.com/redis/go-redis/v9"
)

const keyOperation = "session"

type sessionRepository struct {
	client *redis.Client
	key    string
}

// NewClient builds a redis client from the session config.
func NewClient(cfg *config.RedisSessionConfig) (*redis.Client, error) {
	if cfg == nil || cfg.Addr == "" {
		return nil, errors.New("redis session addr is required")
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// NewSessionRepository stores the blob at <serviceName>:session:<key>.
func NewSessionRepository(client *redis.Client, serviceName, key string) repository.SessionRepository {
	if key == "" {
		key = repository.DefaultSessionKey
	}

	return &sessionRepository{
		client: client,
		key:    GenerateKey(serviceName, key),
	}
}

// GenerateKey namespaces the session key by service.
func GenerateKey(serviceName, key string) string {
	if serviceName == "" {
		return fmt.Sprintf("%s:%s", keyOperation, key)
	}

	return fmt.Sprintf("%s:%s:%s", serviceName, keyOperation, key)
}

// Save stores the blob without expiry. Token lifetime is enforced by the backend.
func (r *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	data, err := codec.EncodeSession(session)
	if err != nil {
		return domainerrors.NewPersistenceError("save", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return domainerrors.NewPersistenceError("save", errors.Wrap(err, "redis set"))
	}

	return nil
}

func (r *sessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.NewPersistenceError("load", errors.Wrap(err, "redis get"))
	}

	session, err := codec.DecodeSession(data)
	if err != nil {
		return nil, domainerrors.NewPersistenceError("load", err)
	}

	return session, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return domainerrors.NewPersistenceError("clear", errors.Wrap(err, "redis del"))
	}

	return nil
}
