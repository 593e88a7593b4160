package domain

// SourceFileInfo describes a source file discovered by the export walker,
// before any parsing. Size and mtime feed the fingerprint gate.
type SourceFileInfo struct {
	// Path is the absolute path of the file.
	Path string

	// SizeBytes is the current file size.
	SizeBytes int64

	// ModifiedAtMs is the current modification time in epoch milliseconds.
	ModifiedAtMs int64
}
