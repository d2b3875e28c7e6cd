package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercato/contexts/trading-core/marketplace-engine/adapters/memory"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

func seedUser(t *testing.T, store *memory.Store, principal string, role entities.Role) {
	t.Helper()
	if err := store.CreateUser(context.Background(), entities.User{
		Principal:    principal,
		Role:         role,
		RegisteredAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed user %s failed: %v", principal, err)
	}
}

func TestIsRegistered(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "sara", entities.RoleSeller)
	lookup := LookupUserUseCase{Repository: store}

	registered, err := lookup.IsRegistered(context.Background(), "sara")
	if err != nil {
		t.Fatalf("is registered failed: %v", err)
	}
	if !registered {
		t.Fatal("expected sara to be registered")
	}

	registered, err = lookup.IsRegistered(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unknown principal must not error: %v", err)
	}
	if registered {
		t.Fatal("expected ghost to be unregistered")
	}
}

func TestLookupUserUnknownPrincipal(t *testing.T) {
	store := memory.NewStore()
	lookup := LookupUserUseCase{Repository: store}

	_, err := lookup.Execute(context.Background(), "ghost")
	if !errors.Is(err, domainerrors.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestListSellerProductsEmptyCatalogIsAnError(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "sara", entities.RoleSeller)
	list := ListSellerProductsUseCase{Repository: store}

	_, err := list.Execute(context.Background(), ListSellerProductsQuery{Seller: "sara"})
	if !errors.Is(err, domainerrors.ErrNoProducts) {
		t.Fatalf("expected ErrNoProducts, got %v", err)
	}
}

func TestListSellerProductsRejectsBuyer(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "bob", entities.RoleBuyer)
	list := ListSellerProductsUseCase{Repository: store}

	_, err := list.Execute(context.Background(), ListSellerProductsQuery{Seller: "bob"})
	if !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}
}

func TestListSellerProductsReturnsOwnListings(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "sara", entities.RoleSeller)
	seedUser(t, store, "sam", entities.RoleSeller)
	now := time.Now()

	for _, seller := range []string{"sara", "sara", "sam"} {
		if _, err := store.CreateProduct(context.Background(), ports.CreateProductInput{
			Name:     "item",
			Quantity: 1,
			Seller:   seller,
		}, now); err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}

	list := ListSellerProductsUseCase{Repository: store}
	products, err := list.Execute(context.Background(), ListSellerProductsQuery{Seller: "sara"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products for sara, got %d", len(products))
	}
	for _, product := range products {
		if product.Seller != "sara" {
			t.Fatalf("foreign listing leaked: %+v", product)
		}
	}
}
