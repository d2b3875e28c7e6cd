package services

import (
	"errors"
	"testing"

	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
)

func TestRequireRoleBothSatisfiesEitherSide(t *testing.T) {
	user := entities.User{Principal: "casey", Role: entities.RoleBoth}

	if err := RequireRole(user, entities.RoleSeller); err != nil {
		t.Fatalf("Both should satisfy Seller, got %v", err)
	}
	if err := RequireRole(user, entities.RoleBuyer); err != nil {
		t.Fatalf("Both should satisfy Buyer, got %v", err)
	}
}

func TestRequireRoleRejectsWrongSide(t *testing.T) {
	buyer := entities.User{Principal: "bob", Role: entities.RoleBuyer}
	if err := RequireRole(buyer, entities.RoleSeller); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}

	seller := entities.User{Principal: "sara", Role: entities.RoleSeller}
	if err := RequireCanBuy(seller); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole for seller buying, got %v", err)
	}
}

func TestRequireRoleChangeAllowedTable(t *testing.T) {
	cases := []struct {
		name    string
		from    entities.Role
		to      entities.Role
		allowed bool
	}{
		{"seller to buyer", entities.RoleSeller, entities.RoleBuyer, true},
		{"buyer to seller", entities.RoleBuyer, entities.RoleSeller, true},
		{"both to buyer", entities.RoleBoth, entities.RoleBuyer, true},
		{"both to seller", entities.RoleBoth, entities.RoleSeller, true},
		{"buyer to buyer", entities.RoleBuyer, entities.RoleBuyer, false},
		{"seller to seller", entities.RoleSeller, entities.RoleSeller, false},
		{"both to both", entities.RoleBoth, entities.RoleBoth, false},
		{"buyer to both", entities.RoleBuyer, entities.RoleBoth, false},
		{"seller to both", entities.RoleSeller, entities.RoleBoth, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := entities.User{Principal: "u", Role: tc.from}
			err := RequireRoleChangeAllowed(user, tc.to)
			if tc.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tc.allowed && !errors.Is(err, domainerrors.ErrInvalidRoleChange) {
				t.Fatalf("expected ErrInvalidRoleChange, got %v", err)
			}
		})
	}
}

func TestRequireOrderTransitionActor(t *testing.T) {
	order := entities.Order{
		OrderID: 1,
		Buyer:   "bob",
		Seller:  "sara",
		Status:  entities.StatusPending,
	}

	if err := RequireOrderTransitionActor(order, "sara", entities.StatusShipped); err != nil {
		t.Fatalf("seller shipping own order should pass, got %v", err)
	}
	if err := RequireOrderTransitionActor(order, "bob", entities.StatusShipped); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("buyer shipping should fail with ErrWrongRole, got %v", err)
	}
	if err := RequireOrderTransitionActor(order, "bob", entities.StatusReceived); err != nil {
		t.Fatalf("buyer receiving own order should pass, got %v", err)
	}
	if err := RequireOrderTransitionActor(order, "sara", entities.StatusReceived); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("seller receiving should fail with ErrWrongRole, got %v", err)
	}
	if err := RequireOrderTransitionActor(order, "sara", entities.StatusCancelled); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("cancel target should fail with ErrInvalidState, got %v", err)
	}
}
