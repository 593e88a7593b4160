package domain

// SchemaVersion is the current pack schema version.
// Packs written by this code always carry this version in their manifest.
const SchemaVersion = 1

// Counts holds the live row counts of a pack's store.
type Counts struct {
	Messages  int64 `json:"messages"`
	Documents int64 `json:"documents"`
}

// Manifest is the completion record of a built pack.
//
// It is written exactly once, after the store is fully durable; its
// presence is the signal that the pack is valid and complete. Counts
// must equal the live row counts at the moment the manifest was written.
type Manifest struct {
	SchemaVersion int    `json:"schemaVersion"`
	GeneratedAtMs int64  `json:"generatedAtMs"`
	Counts        Counts `json:"counts"`
	ContentDigest string `json:"contentDigest"`
}
