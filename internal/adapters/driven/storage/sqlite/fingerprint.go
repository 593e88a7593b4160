package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// fingerprintStore implements driven.FingerprintStore.
type fingerprintStore struct {
	store *Store
}

var _ driven.FingerprintStore = (*fingerprintStore)(nil)

// Get retrieves the fingerprint for a path.
func (s *fingerprintStore) Get(ctx context.Context, path string) (*domain.SourceFileRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT path, size_bytes, modified_at_ms, last_ingested_at_ms
		FROM source_files WHERE path = ?
	`, path)

	var rec domain.SourceFileRecord
	if err := row.Scan(&rec.Path, &rec.SizeBytes, &rec.ModifiedAtMs, &rec.LastIngestedAtMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning fingerprint: %w", err)
	}
	return &rec, nil
}

// Record upserts the fingerprint for a path. ApplyFile records
// fingerprints inside its own transaction; this standalone path exists
// for callers outside the per-file apply.
func (s *fingerprintStore) Record(ctx context.Context, rec domain.SourceFileRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO source_files (path, size_bytes, modified_at_ms, last_ingested_at_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			size_bytes = excluded.size_bytes,
			modified_at_ms = excluded.modified_at_ms,
			last_ingested_at_ms = excluded.last_ingested_at_ms
	`, rec.Path, rec.SizeBytes, rec.ModifiedAtMs, rec.LastIngestedAtMs)
	if err != nil {
		return fmt.Errorf("saving fingerprint: %w", err)
	}
	return nil
}
