package commands

import (
	"context"
	"log/slog"
	"time"

	application "mercato/contexts/trading-core/marketplace-engine/application"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	"mercato/contexts/trading-core/marketplace-engine/domain/services"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// ChangeRoleCommand switches the caller's registered role.
type ChangeRoleCommand struct {
	Principal string
	NewRole   entities.Role
}

// ChangeRoleUseCase validates the role-change table and persists the update
// together with the role-change notification row, in one atomic step.
type ChangeRoleUseCase struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	user, err := u.Repository.GetUser(ctx, cmd.Principal)
	if err != nil {
		return entities.User{}, err
	}
	if err := services.RequireRoleChangeAllowed(user, cmd.NewRole); err != nil {
		logger.Warn("role change rejected",
			"event", "engine_role_change_rejected",
			"module", "trading-core/marketplace-engine",
			"layer", "application",
			"principal", cmd.Principal,
			"current_role", string(user.Role),
			"requested_role", string(cmd.NewRole),
		)
		return entities.User{}, err
	}

	outboxID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}

	updated, err := u.Repository.ChangeRole(ctx, ports.ChangeRoleInput{
		Principal: cmd.Principal,
		OldRole:   user.Role,
		NewRole:   cmd.NewRole,
		OutboxID:  outboxID,
		EventID:   eventID,
		ChangedAt: u.now(),
	})
	if err != nil {
		logger.Error("role change write failed",
			"event", "engine_role_change_write_failed",
			"module", "trading-core/marketplace-engine",
			"layer", "application",
			"principal", cmd.Principal,
			"error", err.Error(),
		)
		return entities.User{}, err
	}

	logger.Info("role changed",
		"event", "engine_role_changed",
		"module", "trading-core/marketplace-engine",
		"layer", "application",
		"principal", cmd.Principal,
		"old_role", string(user.Role),
		"new_role", string(cmd.NewRole),
	)
	return updated, nil
}

func (u ChangeRoleUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
