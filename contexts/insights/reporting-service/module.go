package reportingservice

import (
	"log/slog"

	engineadapter "mercato/contexts/insights/reporting-service/adapters/engine"
	httpadapter "mercato/contexts/insights/reporting-service/adapters/http"
	"mercato/contexts/insights/reporting-service/application"
	"mercato/contexts/insights/reporting-service/ports"
	engineports "mercato/contexts/trading-core/marketplace-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Reader ports.Reader
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Reader: deps.Reader,
				Clock:  deps.Clock,
				Logger: deps.Logger,
			},
		},
	}
}

// NewEngineBackedModule reads directly from the engine's snapshot port.
func NewEngineBackedModule(snapshot engineports.Snapshot, clock ports.Clock, logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Reader: engineadapter.NewReader(snapshot),
		Clock:  clock,
		Logger: logger,
	})
}
