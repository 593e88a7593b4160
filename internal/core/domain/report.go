package domain

import "time"

// IngestReport summarises one ingestion run. Per-file parse failures are
// collected here rather than aborting the run, so the caller gets a
// complete picture of what succeeded and what was skipped.
type IngestReport struct {
	// RunID uniquely identifies this ingestion run for log correlation.
	RunID string

	// FilesProcessed is the number of source files parsed and written.
	FilesProcessed int

	// FilesSkipped is the number of files skipped by fingerprint match.
	FilesSkipped int

	// FilesFailed is the number of files that failed to parse.
	FilesFailed int

	// MessagesWritten is the total messages upserted this run.
	MessagesWritten int64

	// DocumentsWritten is the total documents upserted this run.
	DocumentsWritten int64

	// Manifest is the manifest written at the end of the run.
	Manifest Manifest

	// Duration is the wall-clock time of the run.
	Duration time.Duration

	// Failures holds the per-file parse errors, in walk order.
	Failures []*ParseError
}

// VerifyReport is the result of verifying a completed pack.
type VerifyReport struct {
	// OK is true when every check passed.
	OK bool

	// FTSSampleDocID is the document identifier returned by the
	// full-text smoke query, when that check passed.
	FTSSampleDocID string

	// Failures describes every check that failed, in check order.
	Failures []string
}
