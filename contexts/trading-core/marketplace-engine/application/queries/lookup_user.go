package queries

import (
	"context"
	"errors"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// LookupUserUseCase resolves a principal to its user record.
type LookupUserUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u LookupUserUseCase) Execute(ctx context.Context, principal string) (entities.User, error) {
	return u.Repository.GetUser(ctx, principal)
}

// IsRegistered reports whether the principal has a user record.
func (u LookupUserUseCase) IsRegistered(ctx context.Context, principal string) (bool, error) {
	exists, err := u.Repository.UserExists(ctx, principal)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotRegistered) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}
