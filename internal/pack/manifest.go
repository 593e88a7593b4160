// Package pack handles the pack-level artifacts that sit beside the
// store: today just the manifest, the completion record whose presence
// marks a pack as valid.
package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// ManifestFileName is the manifest file within a pack directory.
const ManifestFileName = "manifest.json"

// Ensure DirStore implements the interface.
var _ driven.ManifestStore = (*DirStore)(nil)

// DirStore is a driven.ManifestStore bound to one pack directory.
type DirStore struct {
	dir string
}

// NewDirStore creates a manifest store for the given pack directory.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Write publishes the manifest atomically.
func (s *DirStore) Write(m domain.Manifest) error {
	return WriteManifest(s.dir, m)
}

// Read loads the pack's manifest.
func (s *DirStore) Read() (*domain.Manifest, error) {
	return ReadManifest(s.dir)
}

// WriteManifest writes the manifest into dir atomically: the JSON is
// written to a temp file, synced, then renamed into place. A crash
// mid-write therefore never leaves a half-written manifest, so
// "manifest present" stays a trustworthy completion signal.
func WriteManifest(dir string, m domain.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("%w: creating manifest temp file: %v", domain.ErrWrite, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing manifest: %v", domain.ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: syncing manifest: %v", domain.ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing manifest: %v", domain.ErrWrite, err)
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, ManifestFileName)); err != nil {
		return fmt.Errorf("%w: publishing manifest: %v", domain.ErrWrite, err)
	}
	return nil
}

// ReadManifest reads the manifest from dir.
// Returns domain.ErrIncompletePack when no manifest exists.
func ReadManifest(dir string) (*domain.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIncompletePack, dir)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
