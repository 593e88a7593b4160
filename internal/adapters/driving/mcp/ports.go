package mcp

import (
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides full-text queries over the pack.
	Search driving.SearchService

	// Verify checks pack integrity.
	Verify driving.Verifier

	// Reader serves individual documents for the document resource.
	Reader driven.PackReader

	// Manifests serves the pack manifest for the manifest resource.
	Manifests driven.ManifestStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Verify, Reader and Manifests are optional
	return nil
}
