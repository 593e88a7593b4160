package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// defaultSearchLimit bounds queries that do not set their own limit.
const defaultSearchLimit = 20

// searchEngine implements driven.SearchEngine on the FTS5 index.
type searchEngine struct {
	store *Store
}

var _ driven.SearchEngine = (*searchEngine)(nil)

// Search runs an FTS5 MATCH query, ordered by the engine's default bm25
// rank. Results join back to documents so SourceRef reflects the live
// table, not the index copy.
func (s *searchEngine) Search(
	ctx context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	match := sanitizeFTSQuery(query)
	if match == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT fts.doc_id, d.source_ref,
		       snippet(documents_fts, 1, '[', ']', '…', 8),
		       fts.rank
		FROM documents_fts fts
		JOIN documents d ON d.id = fts.doc_id
		WHERE documents_fts MATCH ?
		ORDER BY fts.rank
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.SearchResult
		if err := rows.Scan(&r.DocumentID, &r.SourceRef, &r.Snippet, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	return results, nil
}

// sanitizeFTSQuery quotes each term so user input cannot inject FTS5
// query syntax. Terms are implicitly ANDed by FTS5.
func sanitizeFTSQuery(query string) string {
	var terms []string
	for _, w := range strings.Fields(query) {
		// Strip existing quotes to avoid double-quoting
		w = strings.ReplaceAll(w, `"`, "")
		if w == "" {
			continue
		}
		terms = append(terms, `"`+w+`"`)
	}
	return strings.Join(terms, " ")
}
