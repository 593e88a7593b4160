// Package domain defines the core business entities for mempack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Conversation: A normalised conversation from the raw export
//   - Message: A single message with a deterministic identifier
//   - Document: An indexable unit of extracted text
//   - SourceFileRecord: The fingerprint gating re-ingestion of a source file
//   - Manifest: The completion record of a built pack
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
