package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
	"github.com/custodia-labs/mempack/internal/core/ports/driving"
	"github.com/custodia-labs/mempack/internal/logger"
)

// Ensure IngestOrchestrator implements the interface.
var _ driving.Ingestor = (*IngestOrchestrator)(nil)

// IngestOrchestrator runs the ingestion pipeline for one pack: walk the
// export, gate each file on its fingerprint, parse, write, and finally
// build the manifest from live store counts.
type IngestOrchestrator struct {
	source       driven.ExportSource
	fingerprints driven.FingerprintStore
	writer       driven.PackWriter
	reader       driven.PackReader
	manifests    driven.ManifestStore
}

// NewIngestOrchestrator creates an ingest orchestrator.
func NewIngestOrchestrator(
	source driven.ExportSource,
	fingerprints driven.FingerprintStore,
	writer driven.PackWriter,
	reader driven.PackReader,
	manifests driven.ManifestStore,
) *IngestOrchestrator {
	return &IngestOrchestrator{
		source:       source,
		fingerprints: fingerprints,
		writer:       writer,
		reader:       reader,
		manifests:    manifests,
	}
}

// Ingest processes the whole export and writes the manifest last.
//
// Per-file parse failures are collected in the report and leave the
// file's fingerprint untouched, so the file is retried next run. Any
// other failure aborts before the manifest write: the pack is then
// either manifest-less or still carries its previous valid manifest.
func (o *IngestOrchestrator) Ingest(
	ctx context.Context,
	opts driving.IngestOptions,
) (*domain.IngestReport, error) {
	started := time.Now()
	report := &domain.IngestReport{RunID: uuid.New().String()}

	logger.Info("Starting ingest run %s (force=%v)", report.RunID, opts.Force)

	infoCh, errCh := o.source.Files(ctx)
	for info := range infoCh {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := o.processFile(ctx, info, opts.Force, report); err != nil {
			return nil, err
		}
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	manifest, err := o.buildManifest(ctx)
	if err != nil {
		return nil, err
	}
	report.Manifest = *manifest
	report.Duration = time.Since(started)

	logger.Info("Ingest complete: %d processed, %d skipped, %d failed (%d messages, %d documents)",
		report.FilesProcessed, report.FilesSkipped, report.FilesFailed,
		report.MessagesWritten, report.DocumentsWritten)

	return report, nil
}

// processFile runs the fingerprint gate, parse and apply for one file.
func (o *IngestOrchestrator) processFile(
	ctx context.Context,
	info domain.SourceFileInfo,
	force bool,
	report *domain.IngestReport,
) error {
	needs, err := o.needsProcessing(ctx, info, force)
	if err != nil {
		return err
	}
	if !needs {
		logger.Debug("Skipping %s: fingerprint unchanged", info.Path)
		report.FilesSkipped++
		return nil
	}

	batch, err := o.source.Parse(ctx, info.Path)
	if err != nil {
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			// Recoverable: skip the file, keep its fingerprint stale so
			// the next run retries it.
			logger.Warn("Skipping %s: %v", info.Path, parseErr.Cause)
			report.FilesFailed++
			report.Failures = append(report.Failures, parseErr)
			return nil
		}
		return err
	}

	result, err := o.writer.ApplyFile(ctx, *batch, domain.SourceFileRecord{
		Path:             info.Path,
		SizeBytes:        info.SizeBytes,
		ModifiedAtMs:     info.ModifiedAtMs,
		LastIngestedAtMs: time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}

	logger.Debug("Processed %s: %d messages, %d documents",
		info.Path, result.MessagesWritten, result.DocumentsWritten)
	report.FilesProcessed++
	report.MessagesWritten += result.MessagesWritten
	report.DocumentsWritten += result.DocumentsWritten
	return nil
}

// needsProcessing decides whether a file must be (re)processed: always
// under force, otherwise when no fingerprint exists or the stored
// (size, mtime) pair differs from the current observation.
func (o *IngestOrchestrator) needsProcessing(
	ctx context.Context,
	info domain.SourceFileInfo,
	force bool,
) (bool, error) {
	if force {
		return true, nil
	}

	rec, err := o.fingerprints.Get(ctx, info.Path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("get fingerprint: %w", err)
	}
	return !rec.Matches(info.SizeBytes, info.ModifiedAtMs), nil
}

// buildManifest computes the manifest from live store state and
// publishes it, marking the pack complete.
func (o *IngestOrchestrator) buildManifest(ctx context.Context) (*domain.Manifest, error) {
	counts, err := o.reader.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting rows for manifest: %w", err)
	}
	digest, err := o.reader.ContentDigest(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing content digest: %w", err)
	}

	manifest := domain.Manifest{
		SchemaVersion: domain.SchemaVersion,
		GeneratedAtMs: time.Now().UnixMilli(),
		Counts:        counts,
		ContentDigest: digest,
	}
	if err := o.manifests.Write(manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return &manifest, nil
}
