package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// IDGenerator mints opaque identifiers for events and outbox rows.
// Product and order ids are not generated here: the engine assigns them as
// dense sequential integers from per-collection counters.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
