package services

import (
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
)

// Stateless authorization predicates consulted by every mutating operation.
// They evaluate already-loaded records and hold no state of their own.

// RequireRole succeeds when the user's role is the required one, or RoleBoth.
func RequireRole(user entities.User, required entities.Role) error {
	if !user.Role.Satisfies(required) {
		return domainerrors.ErrWrongRole
	}
	return nil
}

// RequireCanBuy succeeds for buyers and both-role users; sellers cannot buy.
func RequireCanBuy(user entities.User) error {
	if !user.Role.CanBuy() {
		return domainerrors.ErrWrongRole
	}
	return nil
}

// RequireRoleChangeAllowed enforces the role-change table: a single role can
// only flip to the other single role, and RoleBoth can only narrow to one of
// them. Reasserting the current role is rejected.
func RequireRoleChangeAllowed(user entities.User, requested entities.Role) error {
	switch {
	case user.Role == entities.RoleSeller && requested == entities.RoleBuyer:
		return nil
	case user.Role == entities.RoleBuyer && requested == entities.RoleSeller:
		return nil
	case user.Role == entities.RoleBoth && requested == entities.RoleBuyer:
		return nil
	case user.Role == entities.RoleBoth && requested == entities.RoleSeller:
		return nil
	default:
		return domainerrors.ErrInvalidRoleChange
	}
}

// RequireOrderTransitionActor checks caller identity for a target state:
// only the order's seller may ship, only the order's buyer may receive.
// Any other target is rejected here; the state-table check is separate.
func RequireOrderTransitionActor(order entities.Order, caller string, target entities.Status) error {
	switch target {
	case entities.StatusShipped:
		if caller != order.Seller {
			return domainerrors.ErrWrongRole
		}
		return nil
	case entities.StatusReceived:
		if caller != order.Buyer {
			return domainerrors.ErrWrongRole
		}
		return nil
	default:
		return domainerrors.ErrInvalidState
	}
}
