package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingest Errors.

	// ErrInputNotFound indicates the input export directory does not exist.
	// Pre-flight and fatal: no pack is touched.
	ErrInputNotFound = errors.New("input directory not found")

	// ErrWrite indicates the pack store could not be opened or written.
	// Fatal for the run: no manifest is written.
	ErrWrite = errors.New("pack write failed")

	// ErrIndexSync indicates full-text index maintenance failed for a
	// committed document. Fatal: an unindexed-but-present document would
	// violate the index bijection invariant.
	ErrIndexSync = errors.New("search index sync failed")

	// Verify Errors.

	// ErrIncompletePack indicates the pack directory has a store but
	// no manifest, so the pack was never completed.
	ErrIncompletePack = errors.New("incomplete pack: manifest missing")

	// ErrManifestMismatch indicates the manifest counts disagree with
	// the live row counts of the store.
	ErrManifestMismatch = errors.New("manifest counts mismatch store")

	// ErrIndexDesync indicates the full-text index failed a smoke query
	// it logically should have answered.
	ErrIndexDesync = errors.New("search index out of sync with documents")
)

// ParseError is a per-file, recoverable parse failure. The offending file
// is skipped, its fingerprint is not advanced, and the run continues.
type ParseError struct {
	// Path is the source file that failed to parse.
	Path string

	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
