package ports

import (
	"context"
	"time"

	contractsv1 "mercato/contracts/gen/events/v1"
)

// RoleChangedWire is the versioned cross-runtime envelope role-change events
// travel in once they leave the process.
type RoleChangedWire = contractsv1.Envelope

// RoleChangedEvent is the observability side effect of a successful role
// change. The engine appends it to the outbox; the relay publishes it for
// external subscribers. No engine state depends on it.
type RoleChangedEvent struct {
	EventID      string    `json:"event_id"`
	Principal    string    `json:"principal"`
	PreviousRole string    `json:"previous_role"`
	NewRole      string    `json:"new_role"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type RoleChangedPublisher interface {
	PublishRoleChanged(ctx context.Context, event RoleChangedEvent) error
}
