package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"mercato/contexts/trading-core/marketplace-engine/ports"
	contractsv1 "mercato/contracts/gen/events/v1"
	sharedevents "mercato/internal/shared/events"
)

const defaultConsumerGroup = "marketplace-role-change-cg"

// SubscriberBus is the consuming slice of the platform message bus.
type SubscriberBus interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, sharedevents.Envelope) error,
	) error
}

// Monitor consumes relayed role-change notifications from the bus. It is the
// in-tree external subscriber: it holds no engine capability and only
// observes what the relay published.
type Monitor struct {
	Bus           SubscriberBus
	ConsumerGroup string
	Logger        *slog.Logger
}

func NewMonitor(bus SubscriberBus, logger *slog.Logger) Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return Monitor{Bus: bus, Logger: logger}
}

func (m Monitor) Start(ctx context.Context) error {
	group := m.ConsumerGroup
	if group == "" {
		group = defaultConsumerGroup
	}
	return m.Bus.Subscribe(ctx, TopicRoleChanged, group, m.handleRoleChanged)
}

func (m Monitor) handleRoleChanged(_ context.Context, event sharedevents.Envelope) error {
	wire, ok := event.Payload.(ports.RoleChangedWire)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for event %s", event.Payload, event.EventID)
	}

	var payload contractsv1.RoleChangedV1
	if err := json.Unmarshal(wire.Data, &payload); err != nil {
		return fmt.Errorf("decode role change %s: %w", event.EventID, err)
	}

	m.Logger.Info("role change observed",
		"event", "engine_role_change_observed",
		"module", "trading-core/marketplace-engine",
		"layer", "adapter",
		"event_id", payload.EventID,
		"principal", payload.Principal,
		"previous_role", payload.PreviousRole,
		"new_role", payload.NewRole,
	)
	return nil
}
