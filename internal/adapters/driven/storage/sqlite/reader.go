package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// packReader implements driven.PackReader.
type packReader struct {
	store *Store
}

var _ driven.PackReader = (*packReader)(nil)

// Counts returns the live row counts of the store.
func (r *packReader) Counts(ctx context.Context) (domain.Counts, error) {
	var counts domain.Counts
	if err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM messages").Scan(&counts.Messages); err != nil {
		return counts, fmt.Errorf("counting messages: %w", err)
	}
	if err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents").Scan(&counts.Documents); err != nil {
		return counts, fmt.Errorf("counting documents: %w", err)
	}
	return counts, nil
}

// ContentDigest hashes the live documents in identifier order. Two stores
// holding the same documents always produce the same digest, regardless
// of insertion order.
func (r *packReader) ContentDigest(ctx context.Context) (string, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT id, text FROM documents ORDER BY id")
	if err != nil {
		return "", fmt.Errorf("querying documents for digest: %w", err)
	}
	defer rows.Close()

	h := sha256.New()
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return "", fmt.Errorf("scanning document for digest: %w", err)
		}
		io.WriteString(h, id)   //nolint:errcheck // hash writes cannot fail
		io.WriteString(h, "\x00")
		io.WriteString(h, text)
		io.WriteString(h, "\x00")
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating documents for digest: %w", err)
	}

	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}

// GetDocument retrieves a document by identifier.
func (r *packReader) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, source_type, source_ref, text, created_at_ms
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var sourceType string
	if err := row.Scan(&doc.ID, &sourceType, &doc.SourceRef, &doc.Text, &doc.CreatedAtMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.SourceType = domain.SourceType(sourceType)
	return &doc, nil
}
