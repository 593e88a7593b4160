package domain

// SearchOptions configures a full-text query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means the
	// implementation default.
	Limit int
}

// SearchResult represents a single full-text hit.
//
// Ordering across results is whatever the underlying index engine's
// default relevance produces; mempack imposes no additional ranking.
type SearchResult struct {
	// DocumentID is the matched document.
	DocumentID string

	// SourceRef is the identifier of the document's owning unit.
	SourceRef string

	// Snippet is a short excerpt with the matched terms.
	Snippet string

	// Score is the engine relevance score (lower is better for bm25).
	Score float64
}
