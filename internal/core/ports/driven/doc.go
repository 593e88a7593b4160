// Package driven defines the driven (secondary) ports of the hexagonal
// architecture: interfaces the core services require from infrastructure.
//
// Adapters under internal/adapters/driven implement these interfaces.
// Core services receive them by injection; nothing in this package or in
// internal/core constructs an adapter.
package driven
