package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
	"github.com/custodia-labs/mempack/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers full-text queries over a completed pack.
// Ordering is the engine's default relevance; no re-ranking happens here.
type SearchService struct {
	engine driven.SearchEngine
}

// NewSearchService creates a search service over a search engine.
func NewSearchService(engine driven.SearchEngine) *SearchService {
	return &SearchService{engine: engine}
}

// Search validates the query and delegates to the engine.
func (s *SearchService) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	results, err := s.engine.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Search %q: %d result(s)", query, len(results))
	return results, nil
}
