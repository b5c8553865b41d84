// Package backend selects the account backend configured for this process.
package backend

import (
	"context"
	"log/slog"

	"ordering/config"
	"ordering/internal/domain/constants"
	"ordering/internal/domain/service"
	"ordering/internal/infra/auth"
	"ordering/internal/infra/backend/firebase"
	"ordering/internal/infra/backend/local"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthServiceParams holds dependencies for the AuthService, injected by Fx
type AuthServiceParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewAuthService creates the AuthService named by backend.provider
func NewAuthService(params AuthServiceParams) (service.AuthService, error) {
	cfg := params.Config.Backend
	logger := params.Logger

	provider := constants.BackendProviderLocal
	if cfg != nil && cfg.Provider != "" {
		provider = cfg.Provider
	}

	switch provider {
	case constants.BackendProviderLocal:
		tokens, err := auth.NewJWTService(params.Config)
		if err != nil {
			return nil, err
		}
		logger.Info("Using local account backend", slog.Duration("session_ttl", tokens.GetSessionTTL()))

		return local.NewBackend(auth.NewBcryptHasher(params.Config), tokens, logger), nil

	case constants.BackendProviderFirebase:
		if cfg.Firebase == nil {
			return nil, errors.New("backend.firebase is required for firebase provider")
		}
		logger.Info("Using Firebase account backend", slog.String("project_id", cfg.Firebase.ProjectID))

		return firebase.NewBackend(params.Ctx, cfg.Firebase, logger)

	default:
		return nil, errors.Errorf("unknown backend provider: %s", provider)
	}
}
