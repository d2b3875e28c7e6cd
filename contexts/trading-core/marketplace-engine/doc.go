// Package marketplaceengine implements the order lifecycle engine inside
// Mercato.
//
// Layering:
// - domain: core entities, role/transition invariants, errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence, clock, ids, and events
// - adapters: concrete HTTP, memory, postgres, and event publisher implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under trading-core context.
// - Do not import other context adapters into domain/application.
// - Cross-service reads go through the read-only Snapshot port.
package marketplaceengine
