package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/ports"
	contractsv1 "mercato/contracts/gen/events/v1"
	sharedevents "mercato/internal/shared/events"
)

const TopicRoleChanged = contractsv1.EventTypeRoleChanged

// Bus is the slice of the platform message bus this adapter needs.
type Bus interface {
	Publish(ctx context.Context, topic string, event sharedevents.Envelope) error
}

// Publisher forwards role-change notifications to the platform bus. With a
// nil bus it degrades to log-only, which keeps the in-memory module usable
// without messaging runtime.
type Publisher struct {
	bus    Bus
	logger *slog.Logger
}

func NewPublisher(bus Bus, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{bus: bus, logger: logger}
}

func (p Publisher) PublishRoleChanged(ctx context.Context, event ports.RoleChangedEvent) error {
	p.logger.Info("role changed event published",
		"event", "engine_role_changed_published",
		"module", "trading-core/marketplace-engine",
		"layer", "adapter",
		"event_id", event.EventID,
		"principal", event.Principal,
		"previous_role", event.PreviousRole,
		"new_role", event.NewRole,
	)
	if p.bus == nil {
		return nil
	}

	data, err := json.Marshal(contractsv1.RoleChangedV1{
		EventID:      event.EventID,
		Principal:    event.Principal,
		PreviousRole: event.PreviousRole,
		NewRole:      event.NewRole,
		OccurredAt:   event.OccurredAt,
	})
	if err != nil {
		return err
	}
	wire := ports.RoleChangedWire{
		EventID:          event.EventID,
		EventType:        TopicRoleChanged,
		OccurredAt:       event.OccurredAt,
		SourceService:    "trading-core/marketplace-engine",
		SchemaVersion:    1,
		PartitionKeyPath: "principal",
		PartitionKey:     event.Principal,
		Data:             data,
	}

	return p.bus.Publish(ctx, TopicRoleChanged, sharedevents.Envelope{
		EventID:        event.EventID,
		EventType:      TopicRoleChanged,
		SourceService:  "trading-core/marketplace-engine",
		OccurredAtUTC:  event.OccurredAt,
		CorrelationID:  event.Principal,
		EntityType:     "user",
		EntityID:       event.Principal,
		PayloadVersion: 1,
		Payload:        wire,
	})
}

var _ ports.RoleChangedPublisher = (*Publisher)(nil)
