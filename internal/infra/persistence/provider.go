// Package persistence selects the session store configured for this process.
package persistence

import (
	"context"
	"log/slog"

	"ordering/config"
	"ordering/internal/domain/constants"
	"ordering/internal/domain/lifecycle"
	"ordering/internal/domain/repository"
	"ordering/internal/infra/persistence/file"
	"ordering/internal/infra/persistence/memory"
	"ordering/internal/infra/persistence/postgres"
	redisstore "ordering/internal/infra/persistence/redis"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SessionRepositoryParams holds dependencies for the session store, injected by Fx
type SessionRepositoryParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewSessionRepository creates the SessionRepository named by session.driver
func NewSessionRepository(params SessionRepositoryParams) (repository.SessionRepository, error) {
	cfg := params.Config.Session
	logger := params.Logger

	if cfg == nil || cfg.Driver == "" {
		logger.Info("Session driver not configured, using in-memory store")

		return memory.NewSessionRepository(), nil
	}

	switch cfg.Driver {
	case constants.SessionDriverMemory:
		logger.Info("Using in-memory session store")

		return memory.NewSessionRepository(), nil

	case constants.SessionDriverFile:
		if cfg.File == nil || cfg.File.Dir == "" {
			return nil, errors.New("session.file.dir is required for file driver")
		}
		logger.Info("Using file session store",
			slog.String("dir", cfg.File.Dir),
			slog.String("key", cfg.Key),
		)

		return file.NewSessionRepository(cfg.File.Dir, cfg.Key)

	case constants.SessionDriverRedis:
		client, err := redisstore.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("Using redis session store", slog.String("addr", cfg.Redis.Addr))

		params.Lc.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				return errors.Wrap(client.Ping(ctx).Err(), "failed to ping redis")
			},
			OnStop: func(_ context.Context) error {
				logger.Info("Closing redis session store")

				return client.Close()
			},
		})

		return redisstore.NewSessionRepository(client, params.Config.Env.ServiceName, cfg.Key), nil

	case constants.SessionDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres session store")

		return postgres.NewSessionRepository(db, cfg.Key), nil

	default:
		return nil, errors.Errorf("unknown session driver: %s", cfg.Driver)
	}
}
