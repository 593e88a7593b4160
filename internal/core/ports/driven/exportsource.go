package driven

import (
	"context"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// ExportSource walks and parses a raw personal-data export tree.
type ExportSource interface {
	// Files streams the source files discovered under the export root in
	// deterministic (lexical path) order. The info channel closes when the
	// walk completes; a walk failure is sent on the error channel and ends
	// the stream.
	Files(ctx context.Context) (<-chan domain.SourceFileInfo, <-chan error)

	// Parse reads and normalises one source file into a conversation
	// batch. Failures are returned as *domain.ParseError so the caller
	// can skip the file and continue.
	Parse(ctx context.Context, path string) (*domain.ConversationBatch, error)
}
