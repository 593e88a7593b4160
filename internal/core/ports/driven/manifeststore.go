package driven

import (
	"github.com/custodia-labs/mempack/internal/core/domain"
)

// ManifestStore reads and writes the manifest of one pack directory.
type ManifestStore interface {
	// Write publishes the manifest atomically. Called exactly once per
	// successful ingestion run, after the store is durable.
	Write(m domain.Manifest) error

	// Read loads the pack's manifest.
	// Returns domain.ErrIncompletePack when none exists.
	Read() (*domain.Manifest, error)
}
