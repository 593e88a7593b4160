package driven

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// FingerprintStore persists per-path source file fingerprints.
//
// A file needs (re)processing when no record exists for its path or the
// stored (size, mtime) pair differs from the current observation. The
// record for a path is upserted unconditionally after that path has been
// successfully processed.
type FingerprintStore interface {
	// Get retrieves the fingerprint for a path.
	// Returns domain.ErrNotFound if the path has never been ingested.
	Get(ctx context.Context, path string) (*domain.SourceFileRecord, error)

	// Record upserts the fingerprint for a path.
	Record(ctx context.Context, rec domain.SourceFileRecord) error
}
