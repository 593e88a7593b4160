package mcp

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockVerifier is a mock implementation of driving.Verifier.
type mockVerifier struct {
	report *domain.VerifyReport
	err    error
}

func (m *mockVerifier) Verify(_ context.Context, _ string) (*domain.VerifyReport, error) {
	return m.report, m.err
}

// mockPackReader is a mock implementation of driven.PackReader.
type mockPackReader struct {
	counts   domain.Counts
	digest   string
	document *domain.Document
	err      error
}

func (m *mockPackReader) Counts(_ context.Context) (domain.Counts, error) {
	return m.counts, m.err
}

func (m *mockPackReader) ContentDigest(_ context.Context) (string, error) {
	return m.digest, m.err
}

func (m *mockPackReader) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.document, nil
}

// mockManifestStore is a mock implementation of driven.ManifestStore.
type mockManifestStore struct {
	manifest *domain.Manifest
	err      error
}

func (m *mockManifestStore) Write(_ domain.Manifest) error {
	return m.err
}

func (m *mockManifestStore) Read() (*domain.Manifest, error) {
	return m.manifest, m.err
}
