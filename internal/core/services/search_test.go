package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// stubEngine records the query it was handed.
type stubEngine struct {
	gotQuery string
	gotOpts  domain.SearchOptions
	results  []domain.SearchResult
	err      error
}

func (s *stubEngine) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	s.gotQuery = query
	s.gotOpts = opts
	return s.results, s.err
}

func TestSearchService_DelegatesToEngine(t *testing.T) {
	engine := &stubEngine{
		results: []domain.SearchResult{{DocumentID: "d_1", Snippet: "[hit]"}},
	}
	svc := NewSearchService(engine)

	results, err := svc.Search(context.Background(), "hit", domain.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "d_1", results[0].DocumentID)
	assert.Equal(t, "hit", engine.gotQuery)
	assert.Equal(t, 5, engine.gotOpts.Limit)
}

func TestSearchService_RejectsEmptyQuery(t *testing.T) {
	engine := &stubEngine{}
	svc := NewSearchService(engine)

	_, err := svc.Search(context.Background(), "   ", domain.SearchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, engine.gotQuery, "engine must not be called for empty queries")
}

func TestSearchService_WrapsEngineErrors(t *testing.T) {
	engineErr := errors.New("index unavailable")
	svc := NewSearchService(&stubEngine{err: engineErr})

	_, err := svc.Search(context.Background(), "q", domain.SearchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, engineErr)
}
