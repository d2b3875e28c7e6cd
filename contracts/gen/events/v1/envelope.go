package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope for cross-runtime use.
// This package is generated-contract-only and must stay backward compatible.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// EventTypeRoleChanged is the published type for user role switches.
const EventTypeRoleChanged = "marketplace.role_changed"

// RoleChangedV1 is the wire payload carried in Envelope.Data for
// marketplace.role_changed events.
type RoleChangedV1 struct {
	EventID      string    `json:"event_id"`
	Principal    string    `json:"principal"`
	PreviousRole string    `json:"previous_role"`
	NewRole      string    `json:"new_role"`
	OccurredAt   time.Time `json:"occurred_at"`
}
