package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/mempack/internal/core/domain"
	"github.com/custodia-labs/mempack/internal/core/ports/driven"
)

// packWriter implements driven.PackWriter.
type packWriter struct {
	store *Store
}

var _ driven.PackWriter = (*packWriter)(nil)

// ApplyFile applies one file's normalised batch in a single transaction:
// message upserts, document upserts/removals, the matching FTS rows, and
// the file's fingerprint. A crash anywhere before commit rolls everything
// back, leaving the path eligible for reprocessing.
func (w *packWriter) ApplyFile(
	ctx context.Context,
	batch domain.ConversationBatch,
	rec domain.SourceFileRecord,
) (driven.ApplyResult, error) {
	var result driven.ApplyResult

	tx, err := w.store.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("%w: beginning transaction: %v", domain.ErrWrite, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i := range batch.Messages {
		msg := &batch.Messages[i]
		if err := upsertMessage(ctx, tx, msg); err != nil {
			return result, fmt.Errorf("%w: saving message %s: %v", domain.ErrWrite, msg.ID, err)
		}
		result.MessagesWritten++

		docID := domain.DeriveDocumentID(msg.ID)
		if msg.Body != "" {
			if err := upsertDocument(ctx, tx, docID, msg); err != nil {
				return result, err
			}
			result.DocumentsWritten++
		} else {
			removed, err := removeDocument(ctx, tx, docID)
			if err != nil {
				return result, err
			}
			if removed {
				result.DocumentsRemoved++
			}
		}
	}

	if err := recordFingerprint(ctx, tx, rec); err != nil {
		return result, fmt.Errorf("%w: recording fingerprint for %s: %v", domain.ErrWrite, rec.Path, err)
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("%w: committing %s: %v", domain.ErrWrite, rec.Path, err)
	}
	return result, nil
}

// upsertMessage inserts or replaces a message row by its deterministic ID.
func upsertMessage(ctx context.Context, tx *sql.Tx, msg *domain.Message) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, sent_at_ms, ordinal, body, raw_meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			conversation_id = excluded.conversation_id,
			sender_id = excluded.sender_id,
			sent_at_ms = excluded.sent_at_ms,
			ordinal = excluded.ordinal,
			body = excluded.body,
			raw_meta = excluded.raw_meta
	`, msg.ID, msg.ConversationID, msg.SenderID, msg.SentAtMs, msg.Ordinal, msg.Body, msg.RawMeta)
	return err
}

// upsertDocument writes the document owned by msg and refreshes its index
// entry. The FTS delete+insert keeps exactly one index row per document.
func upsertDocument(ctx context.Context, tx *sql.Tx, docID string, msg *domain.Message) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, source_type, source_ref, text, created_at_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			source_type = excluded.source_type,
			source_ref = excluded.source_ref,
			text = excluded.text,
			created_at_ms = excluded.created_at_ms
	`, docID, string(domain.SourceTypeMessage), msg.ID, msg.Body, msg.SentAtMs)
	if err != nil {
		return fmt.Errorf("%w: saving document %s: %v", domain.ErrWrite, docID, err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents_fts WHERE doc_id = ?", docID); err != nil {
		return fmt.Errorf("%w: deindexing document %s: %v", domain.ErrIndexSync, docID, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO documents_fts (doc_id, text) VALUES (?, ?)", docID, msg.Body); err != nil {
		return fmt.Errorf("%w: indexing document %s: %v", domain.ErrIndexSync, docID, err)
	}
	return nil
}

// removeDocument drops the document and its index entry when the owning
// message no longer carries indexable text. Reports whether a document
// row actually existed.
func removeDocument(ctx context.Context, tx *sql.Tx, docID string) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", docID)
	if err != nil {
		return false, fmt.Errorf("%w: deleting document %s: %v", domain.ErrWrite, docID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: deleting document %s: %v", domain.ErrWrite, docID, err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM documents_fts WHERE doc_id = ?", docID); err != nil {
		return false, fmt.Errorf("%w: deindexing document %s: %v", domain.ErrIndexSync, docID, err)
	}
	return affected > 0, nil
}

// recordFingerprint upserts the source file fingerprint within the
// file's transaction.
func recordFingerprint(ctx context.Context, tx *sql.Tx, rec domain.SourceFileRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO source_files (path, size_bytes, modified_at_ms, last_ingested_at_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			size_bytes = excluded.size_bytes,
			modified_at_ms = excluded.modified_at_ms,
			last_ingested_at_ms = excluded.last_ingested_at_ms
	`, rec.Path, rec.SizeBytes, rec.ModifiedAtMs, rec.LastIngestedAtMs)
	return err
}
