package driven

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// SearchEngine provides full-text query operations over a pack.
//
// Index maintenance is not exposed here: the PackWriter keeps the index
// in lockstep with the documents table inside its own transactions, so
// by the time a query runs the index and table always agree.
type SearchEngine interface {
	// Search performs a keyword query and returns matching documents in
	// the engine's default relevance order.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
