package driving

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// IngestOptions configures one ingestion run.
type IngestOptions struct {
	// Force reprocesses every file regardless of fingerprint state.
	Force bool
}

// Ingestor runs the ingestion pipeline: walk the export tree, gate each
// file on its fingerprint, parse and normalise, write transactionally,
// then build the manifest. The call blocks until the manifest is written
// or the run aborts.
//
// Per-file parse failures do not abort the run; they are collected in the
// returned report. Fatal failures (input missing, store write, index sync)
// abort the run before any manifest is written.
type Ingestor interface {
	Ingest(ctx context.Context, opts IngestOptions) (*domain.IngestReport, error)
}
