package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
)

// stubSearchService returns canned search results.
type stubSearchService struct {
	results []domain.SearchResult
	err     error
}

func (s *stubSearchService) Search(
	_ context.Context, _ string, _ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return s.results, s.err
}

// stubIngestor returns a canned report.
type stubIngestor struct {
	report *domain.IngestReport
	err    error
}

func (s *stubIngestor) Ingest(
	_ context.Context, _ driving.IngestOptions,
) (*domain.IngestReport, error) {
	return s.report, s.err
}

// stubVerifier returns a canned report.
type stubVerifier struct {
	report *domain.VerifyReport
	err    error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*domain.VerifyReport, error) {
	return s.report, s.err
}

// setupTestServices installs stub services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldSearch := searchService
	oldIngestor := ingestor
	oldVerifier := verifier

	searchService = &stubSearchService{
		results: []domain.SearchResult{
			{
				DocumentID: "d_0011223344556677",
				SourceRef:  "m_aabbccddeeff0011",
				Snippet:    "the [quick] brown fox",
				Score:      -1.5,
			},
		},
	}
	ingestor = &stubIngestor{
		report: &domain.IngestReport{
			RunID:            "test-run",
			FilesProcessed:   2,
			MessagesWritten:  10,
			DocumentsWritten: 9,
			Duration:         42 * time.Millisecond,
			Manifest: domain.Manifest{
				SchemaVersion: domain.SchemaVersion,
				Counts:        domain.Counts{Messages: 10, Documents: 9},
			},
		},
	}
	verifier = &stubVerifier{
		report: &domain.VerifyReport{OK: true, FTSSampleDocID: "d_0011223344556677"},
	}

	return func() {
		searchService = oldSearch
		ingestor = oldIngestor
		verifier = oldVerifier
	}
}
