package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
	"github.com/custodia-labs/mempack/internal/logger"
)

// Ensure VerifyService implements the interface.
var _ driving.Verifier = (*VerifyService)(nil)

// VerifyService checks a completed pack against the invariants its
// builder promised. All access is read-only.
type VerifyService struct {
	manifests driven.ManifestStore
	reader    driven.PackReader
	search    driven.SearchEngine
}

// NewVerifyService creates a verifier over read-only pack handles.
func NewVerifyService(
	manifests driven.ManifestStore,
	reader driven.PackReader,
	search driven.SearchEngine,
) *VerifyService {
	return &VerifyService{manifests: manifests, reader: reader, search: search}
}

// Verify runs the checks in order: manifest present, schema version
// supported, counts match, content digest matches, and a full-text smoke
// query for smokeToken answers when it logically should. Check failures
// land in the report; the error return is reserved for I/O problems.
func (v *VerifyService) Verify(ctx context.Context, smokeToken string) (*domain.VerifyReport, error) {
	report := &domain.VerifyReport{}

	manifest, err := v.manifests.Read()
	if err != nil {
		if errors.Is(err, domain.ErrIncompletePack) {
			report.Failures = append(report.Failures, domain.ErrIncompletePack.Error())
			return report, nil
		}
		return nil, err
	}

	if manifest.SchemaVersion != domain.SchemaVersion {
		report.Failures = append(report.Failures,
			fmt.Sprintf("unsupported schema version %d (want %d)",
				manifest.SchemaVersion, domain.SchemaVersion))
	}

	counts, err := v.reader.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting live rows: %w", err)
	}
	if counts != manifest.Counts {
		report.Failures = append(report.Failures,
			fmt.Sprintf("%v: manifest says %d messages/%d documents, store has %d/%d",
				domain.ErrManifestMismatch,
				manifest.Counts.Messages, manifest.Counts.Documents,
				counts.Messages, counts.Documents))
	}

	digest, err := v.reader.ContentDigest(ctx)
	if err != nil {
		return nil, fmt.Errorf("recomputing content digest: %w", err)
	}
	if digest != manifest.ContentDigest {
		report.Failures = append(report.Failures,
			fmt.Sprintf("content digest drift: manifest %s, store %s",
				manifest.ContentDigest, digest))
	}

	v.smokeTest(ctx, smokeToken, counts, report)

	report.OK = len(report.Failures) == 0
	logger.Info("Verify: ok=%v, %d failure(s)", report.OK, len(report.Failures))
	return report, nil
}

// smokeTest proves the index answers queries. With an empty store there
// is nothing the index should know, and without a token there is nothing
// to ask, so either way the check passes vacuously.
func (v *VerifyService) smokeTest(
	ctx context.Context,
	token string,
	counts domain.Counts,
	report *domain.VerifyReport,
) {
	if counts.Documents == 0 || token == "" {
		return
	}

	results, err := v.search.Search(ctx, token, domain.SearchOptions{Limit: 1})
	if err != nil {
		report.Failures = append(report.Failures,
			fmt.Sprintf("%v: smoke query failed: %v", domain.ErrIndexDesync, err))
		return
	}
	if len(results) == 0 {
		report.Failures = append(report.Failures,
			fmt.Sprintf("%v: no hit for smoke token %q", domain.ErrIndexDesync, token))
		return
	}
	report.FTSSampleDocID = results[0].DocumentID
}
