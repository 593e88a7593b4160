package driving

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// Verifier checks a completed pack without mutating it.
//
// The checks, in order: a manifest must be present, manifest counts must
// equal the live row counts, and a full-text query for smokeToken must
// return at least one document whenever the store has documents. An empty
// smokeToken skips the query check.
type Verifier interface {
	Verify(ctx context.Context, smokeToken string) (*domain.VerifyReport, error)
}
