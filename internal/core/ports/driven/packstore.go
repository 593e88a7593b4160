package driven

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// ApplyResult reports what one ApplyFile call changed.
type ApplyResult struct {
	// MessagesWritten is the number of message rows upserted.
	MessagesWritten int64

	// DocumentsWritten is the number of document rows upserted.
	DocumentsWritten int64

	// DocumentsRemoved is the number of document rows deleted because
	// their message text became empty on reprocessing.
	DocumentsRemoved int64
}

// PackWriter applies normalised batches to the canonical pack schema.
//
// Each ApplyFile call runs in one transaction covering the file's message
// and document upserts, the matching full-text index rows, and the file's
// fingerprint record. A crash mid-apply therefore leaves the path eligible
// for reprocessing, never falsely marked done, and the document table and
// search index can never be observed out of step.
type PackWriter interface {
	// ApplyFile upserts one file's batch and records its fingerprint,
	// all-or-nothing. Index maintenance failures surface wrapped in
	// domain.ErrIndexSync; all other write failures in domain.ErrWrite.
	ApplyFile(ctx context.Context, batch domain.ConversationBatch, rec domain.SourceFileRecord) (ApplyResult, error)
}

// PackReader provides the read-only view of a pack's store used by the
// manifest builder, the verifier and search.
type PackReader interface {
	// Counts returns the live row counts of the store.
	Counts(ctx context.Context) (domain.Counts, error)

	// ContentDigest computes the digest over the store's live documents,
	// in a deterministic order.
	ContentDigest(ctx context.Context) (string, error)

	// GetDocument retrieves a document by identifier.
	// Returns domain.ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)
}
