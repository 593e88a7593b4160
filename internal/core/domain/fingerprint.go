package domain

// SourceFileRecord is the per-path fingerprint persisted after a source
// file has been successfully ingested. It gates re-processing: a file is
// skipped when its current (size, mtime) pair matches the stored record.
//
// The record is used purely for skip/reprocess decisions, never for content.
type SourceFileRecord struct {
	// Path is the absolute path of the source file.
	Path string

	// SizeBytes is the file size observed at ingestion time.
	SizeBytes int64

	// ModifiedAtMs is the file modification time in epoch milliseconds.
	ModifiedAtMs int64

	// LastIngestedAtMs is when the file was last successfully ingested.
	LastIngestedAtMs int64
}

// Matches reports whether the stored fingerprint matches the current
// observation of the file.
func (r *SourceFileRecord) Matches(sizeBytes, modifiedAtMs int64) bool {
	return r != nil && r.SizeBytes == sizeBytes && r.ModifiedAtMs == modifiedAtMs
}
