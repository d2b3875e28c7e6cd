package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "mercato/contexts/trading-core/marketplace-engine/application"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// RegisterUserCommand is transport-agnostic input for registration.
type RegisterUserCommand struct {
	Principal string
	Role      entities.Role
}

// RegisterUserUseCase inserts a new user record once per principal.
// A second registration for the same principal always fails, regardless of
// the requested role.
type RegisterUserUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Principal) == "" {
		return entities.User{}, domainerrors.ErrNotRegistered
	}
	if !entities.IsValidRole(cmd.Role) {
		return entities.User{}, domainerrors.ErrWrongRole
	}

	user := entities.User{
		Principal:        cmd.Principal,
		Role:             cmd.Role,
		BuyerReputation:  0,
		SellerReputation: 0,
		RegisteredAt:     u.now(),
	}
	if err := u.Repository.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}

	logger.Info("user registered",
		"event", "engine_user_registered",
		"module", "trading-core/marketplace-engine",
		"layer", "application",
		"principal", cmd.Principal,
		"role", string(cmd.Role),
	)
	return user, nil
}

func (u RegisterUserUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
