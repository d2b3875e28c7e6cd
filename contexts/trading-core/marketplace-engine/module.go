package marketplaceengine

import (
	"log/slog"

	httpadapter "mercato/contexts/trading-core/marketplace-engine/adapters/http"
	"mercato/contexts/trading-core/marketplace-engine/adapters/memory"
	"mercato/contexts/trading-core/marketplace-engine/application/commands"
	"mercato/contexts/trading-core/marketplace-engine/application/queries"
	"mercato/contexts/trading-core/marketplace-engine/ports"
)

// Module is the engine composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the engine use-cases and transport handler using explicit
// ports.
func NewModule(deps Dependencies) Module {
	registerUser := commands.RegisterUserUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	changeRole := commands.ChangeRoleUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	publishProduct := commands.PublishProductUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	createOrder := commands.CreateOrderUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	markShipped := commands.MarkShippedUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	markReceived := commands.MarkReceivedUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	lookupUser := queries.LookupUserUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listProducts := queries.ListSellerProductsUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	getOrder := queries.GetOrderUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	getProduct := queries.GetProductUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	handler := httpadapter.Handler{
		RegisterUser:       registerUser,
		ChangeRole:         changeRole,
		PublishProduct:     publishProduct,
		CreateOrder:        createOrder,
		MarkShipped:        markShipped,
		MarkReceived:       markReceived,
		LookupUser:         lookupUser,
		ListSellerProducts: listProducts,
		GetOrder:           getOrder,
		GetProduct:         getProduct,
		Logger:             deps.Logger,
	}

	return Module{
		Handler: handler,
	}
}

// NewInMemoryModule builds a development/testing module with the in-memory
// store serving every port.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
