package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"mercato/contexts/trading-core/marketplace-engine/adapters/memory"
	"mercato/contexts/trading-core/marketplace-engine/domain/entities"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

type capturingPublisher struct {
	events []ports.RoleChangedEvent
	fail   bool
}

func (p *capturingPublisher) PublishRoleChanged(_ context.Context, event ports.RoleChangedEvent) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, event)
	return nil
}

func seedRoleChange(t *testing.T, store *memory.Store, outboxID string) {
	t.Helper()
	principal := "user-" + outboxID
	if err := store.CreateUser(context.Background(), entities.User{
		Principal: principal,
		Role:      entities.RoleBoth,
	}); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	if _, err := store.ChangeRole(context.Background(), ports.ChangeRoleInput{
		Principal: principal,
		OldRole:   entities.RoleBoth,
		NewRole:   entities.RoleSeller,
		OutboxID:  outboxID,
		EventID:   "event-" + outboxID,
		ChangedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed role change failed: %v", err)
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	store := memory.NewStore()
	seedRoleChange(t, store, "a")
	seedRoleChange(t, store, "b")

	publisher := &capturingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if publisher.events[0].NewRole != "seller" {
		t.Fatalf("unexpected event payload: %+v", publisher.events[0])
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("published rows must leave the pending set, got %d", len(pending))
	}
}

func TestOutboxRelayKeepsRowOnPublishFailure(t *testing.T) {
	store := memory.NewStore()
	seedRoleChange(t, store, "a")

	relay := OutboxRelay{
		Outbox:    store,
		Publisher: &capturingPublisher{fail: true},
		Clock:     store,
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected publish failure to surface")
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("failed row must stay pending, got %d", len(pending))
	}
}

func TestOutboxRelayRespectsBatchSize(t *testing.T) {
	store := memory.NewStore()
	seedRoleChange(t, store, "a")
	seedRoleChange(t, store, "b")
	seedRoleChange(t, store, "c")

	publisher := &capturingPublisher{}
	relay := OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     store,
		BatchSize: 2,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once failed: %v", err)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(publisher.events))
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if len(publisher.events) != 3 {
		t.Fatalf("expected remaining row on second run, got %d total", len(publisher.events))
	}
}
