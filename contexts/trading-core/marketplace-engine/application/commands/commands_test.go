package commands

import (
	"context"
	"errors"
	"testing"

	"mercato/contexts/trading-core/marketplace-engine/adapters/memory"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	domainerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
)

type fixture struct {
	store          *memory.Store
	registerUser   RegisterUserUseCase
	changeRole     ChangeRoleUseCase
	publishProduct PublishProductUseCase
	createOrder    CreateOrderUseCase
	markShipped    MarkShippedUseCase
	markReceived   MarkReceivedUseCase
}

func newFixture() fixture {
	store := memory.NewStore()
	return fixture{
		store:          store,
		registerUser:   RegisterUserUseCase{Repository: store, Clock: store},
		changeRole:     ChangeRoleUseCase{Repository: store, Clock: store, IDGenerator: store},
		publishProduct: PublishProductUseCase{Repository: store, Clock: store},
		createOrder:    CreateOrderUseCase{Repository: store, Clock: store},
		markShipped:    MarkShippedUseCase{Repository: store, Clock: store},
		markReceived:   MarkReceivedUseCase{Repository: store, Clock: store},
	}
}

func (f fixture) mustRegister(t *testing.T, principal string, role entities.Role) {
	t.Helper()
	_, err := f.registerUser.Execute(context.Background(), RegisterUserCommand{
		Principal: principal,
		Role:      role,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", principal, err)
	}
}

func (f fixture) mustPublish(t *testing.T, seller, name string, quantity int) entities.Product {
	t.Helper()
	product, err := f.publishProduct.Execute(context.Background(), PublishProductCommand{
		Seller:     seller,
		Name:       name,
		PriceCents: 1500,
		Quantity:   quantity,
		Category:   "general",
	})
	if err != nil {
		t.Fatalf("publish %s failed: %v", name, err)
	}
	return product
}

func TestRegisterUserSecondRegistrationFails(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)

	_, err := f.registerUser.Execute(context.Background(), RegisterUserCommand{
		Principal: "sara",
		Role:      entities.RoleBuyer,
	})
	if !errors.Is(err, domainerrors.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	user, err := f.store.GetUser(context.Background(), "sara")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.Role != entities.RoleSeller {
		t.Fatalf("failed replay must not alter stored role, got %s", user.Role)
	}
}

func TestRegisterUserStartsWithZeroReputation(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "casey", entities.RoleBoth)

	user, err := f.store.GetUser(context.Background(), "casey")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.BuyerReputation != 0 || user.SellerReputation != 0 {
		t.Fatalf("fresh user must start at zero reputation, got %d/%d",
			user.BuyerReputation, user.SellerReputation)
	}
}

func TestPublishProductRequiresSellerCapability(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "bob", entities.RoleBuyer)

	_, err := f.publishProduct.Execute(context.Background(), PublishProductCommand{
		Seller:   "bob",
		Name:     "keyboard",
		Quantity: 3,
	})
	if !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}
}

func TestPublishProductUnregisteredSeller(t *testing.T) {
	f := newFixture()
	_, err := f.publishProduct.Execute(context.Background(), PublishProductCommand{
		Seller:   "ghost",
		Name:     "keyboard",
		Quantity: 3,
	})
	if !errors.Is(err, domainerrors.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestPublishProductRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)

	for _, quantity := range []int{0, -4} {
		_, err := f.publishProduct.Execute(context.Background(), PublishProductCommand{
			Seller:   "sara",
			Name:     "keyboard",
			Quantity: quantity,
		})
		if !errors.Is(err, domainerrors.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
}

func TestPublishProductRejectsNegativePrice(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)

	_, err := f.publishProduct.Execute(context.Background(), PublishProductCommand{
		Seller:     "sara",
		Name:       "keyboard",
		PriceCents: -500,
		Quantity:   3,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	products, err := f.store.ListProductsBySeller(context.Background(), "sara")
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("rejected listing must not be stored, got %d products", len(products))
	}
}

func TestPublishProductAcceptsZeroPrice(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)

	product, err := f.publishProduct.Execute(context.Background(), PublishProductCommand{
		Seller:   "sara",
		Name:     "flyer",
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("zero price publish failed: %v", err)
	}
	if product.PriceCents != 0 {
		t.Fatalf("expected zero price stored, got %d", product.PriceCents)
	}
}

func TestCreateOrderReservesStock(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	order, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != entities.StatusPending {
		t.Fatalf("new order must be pending, got %s", order.Status)
	}
	if order.Seller != "sara" || order.Buyer != "bob" {
		t.Fatalf("order parties wrong: %+v", order)
	}

	remaining, err := f.store.GetProduct(context.Background(), product.ProductID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if remaining.Quantity != 3 {
		t.Fatalf("stock must drop from 5 to 3, got %d", remaining.Quantity)
	}
}

func TestCreateOrderInsufficientStockLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 2)

	_, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  3,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	unchanged, err := f.store.GetProduct(context.Background(), product.ProductID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if unchanged.Quantity != 2 {
		t.Fatalf("rejected order must not touch stock, got %d", unchanged.Quantity)
	}
	orders, err := f.store.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("rejected order must not insert a ledger row, got %d", len(orders))
	}
}

func TestCreateOrderSellerCannotBuy(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "sam", entities.RoleSeller)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	_, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "sam",
		ProductID: product.ProductID,
		Quantity:  1,
	})
	if !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}
}

func TestCreateOrderBothRoleCanBuy(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "casey", entities.RoleBoth)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	if _, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "casey",
		ProductID: product.ProductID,
		Quantity:  1,
	}); err != nil {
		t.Fatalf("Both role must be allowed to buy, got %v", err)
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "bob", entities.RoleBuyer)

	_, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: 999,
		Quantity:  1,
	})
	if !errors.Is(err, domainerrors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	_, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestOrderLifecycleHappyPath(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	order, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	shipped, err := f.markShipped.Execute(context.Background(), MarkShippedCommand{
		Caller:  "sara",
		OrderID: order.OrderID,
	})
	if err != nil {
		t.Fatalf("mark shipped failed: %v", err)
	}
	if shipped.Status != entities.StatusShipped {
		t.Fatalf("expected SHIPPED, got %s", shipped.Status)
	}

	received, err := f.markReceived.Execute(context.Background(), MarkReceivedCommand{
		Caller:  "bob",
		OrderID: order.OrderID,
	})
	if err != nil {
		t.Fatalf("mark received failed: %v", err)
	}
	if received.Status != entities.StatusReceived {
		t.Fatalf("expected RECEIVED, got %s", received.Status)
	}
}

func TestOrderTransitionWrongActor(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	f.mustRegister(t, "mallory", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	order, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.markShipped.Execute(context.Background(), MarkShippedCommand{
		Caller:  "bob",
		OrderID: order.OrderID,
	}); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("buyer shipping: expected ErrWrongRole, got %v", err)
	}

	if _, err := f.markShipped.Execute(context.Background(), MarkShippedCommand{
		Caller:  "sara",
		OrderID: order.OrderID,
	}); err != nil {
		t.Fatalf("seller shipping failed: %v", err)
	}

	if _, err := f.markReceived.Execute(context.Background(), MarkReceivedCommand{
		Caller:  "mallory",
		OrderID: order.OrderID,
	}); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("stranger receiving: expected ErrWrongRole, got %v", err)
	}
}

func TestOrderTransitionActorCheckedBeforeState(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	order, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// Order is still pending: receive is both out of order and by-the-right
	// actor, so the state error surfaces. With the wrong actor the actor
	// error wins even though the state is also wrong.
	if _, err := f.markReceived.Execute(context.Background(), MarkReceivedCommand{
		Caller:  "bob",
		OrderID: order.OrderID,
	}); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("pending receive by buyer: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.markReceived.Execute(context.Background(), MarkReceivedCommand{
		Caller:  "sara",
		OrderID: order.OrderID,
	}); !errors.Is(err, domainerrors.ErrWrongRole) {
		t.Fatalf("pending receive by seller: expected ErrWrongRole, got %v", err)
	}
}

func TestOrderTransitionIsMonotonic(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 5)

	order, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.markShipped.Execute(context.Background(), MarkShippedCommand{
		Caller:  "sara",
		OrderID: order.OrderID,
	}); err != nil {
		t.Fatalf("first ship failed: %v", err)
	}
	if _, err := f.markShipped.Execute(context.Background(), MarkShippedCommand{
		Caller:  "sara",
		OrderID: order.OrderID,
	}); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("double ship: expected ErrInvalidState, got %v", err)
	}

	if _, err := f.markReceived.Execute(context.Background(), MarkReceivedCommand{
		Caller:  "bob",
		OrderID: order.OrderID,
	}); err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if _, err := f.markReceived.Execute(context.Background(), MarkReceivedCommand{
		Caller:  "bob",
		OrderID: order.OrderID,
	}); !errors.Is(err, domainerrors.ErrInvalidState) {
		t.Fatalf("double receive: expected ErrInvalidState, got %v", err)
	}
}

func TestOrderTransitionUnknownOrder(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)

	_, err := f.markShipped.Execute(context.Background(), MarkShippedCommand{
		Caller:  "sara",
		OrderID: 42,
	})
	if !errors.Is(err, domainerrors.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestStockConservationAcrossOrders(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "sara", entities.RoleSeller)
	f.mustRegister(t, "bob", entities.RoleBuyer)
	product := f.mustPublish(t, "sara", "keyboard", 3)

	for i := 0; i < 3; i++ {
		if _, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
			Buyer:     "bob",
			ProductID: product.ProductID,
			Quantity:  1,
		}); err != nil {
			t.Fatalf("order %d failed: %v", i, err)
		}
	}
	_, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		Buyer:     "bob",
		ProductID: product.ProductID,
		Quantity:  1,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientStock) {
		t.Fatalf("exhausted stock: expected ErrInsufficientStock, got %v", err)
	}

	remaining, err := f.store.GetProduct(context.Background(), product.ProductID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	orders, err := f.store.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	reserved := 0
	for _, order := range orders {
		reserved += order.Quantity
	}
	if remaining.Quantity+reserved != 3 {
		t.Fatalf("stock not conserved: %d in catalog + %d reserved != 3",
			remaining.Quantity, reserved)
	}
}

func TestChangeRoleUpdatesUserAndQueuesNotification(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "casey", entities.RoleBoth)

	updated, err := f.changeRole.Execute(context.Background(), ChangeRoleCommand{
		Principal: "casey",
		NewRole:   entities.RoleBuyer,
	})
	if err != nil {
		t.Fatalf("change role failed: %v", err)
	}
	if updated.Role != entities.RoleBuyer {
		t.Fatalf("expected Buyer, got %s", updated.Role)
	}

	pending, err := f.store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one queued notification, got %d", len(pending))
	}
}

func TestChangeRoleRejectsDisallowedTransitions(t *testing.T) {
	f := newFixture()
	f.mustRegister(t, "bob", entities.RoleBuyer)

	// No-op and promotion to Both are both outside the allowed table.
	for _, target := range []entities.Role{entities.RoleBuyer, entities.RoleBoth} {
		_, err := f.changeRole.Execute(context.Background(), ChangeRoleCommand{
			Principal: "bob",
			NewRole:   target,
		})
		if !errors.Is(err, domainerrors.ErrInvalidRoleChange) {
			t.Fatalf("to %s: expected ErrInvalidRoleChange, got %v", target, err)
		}
	}

	pending, err := f.store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("rejected change must not queue a notification, got %d", len(pending))
	}
}

func TestChangeRoleUnregisteredPrincipal(t *testing.T) {
	f := newFixture()
	_, err := f.changeRole.Execute(context.Background(), ChangeRoleCommand{
		Principal: "ghost",
		NewRole:   entities.RoleBuyer,
	})
	if !errors.Is(err, domainerrors.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}
