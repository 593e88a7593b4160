package driving

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// SearchService performs full-text queries over a completed pack.
type SearchService interface {
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
