package domain

// SourceType identifies the kind of unit a Document was extracted from.
type SourceType string

const (
	// SourceTypeMessage marks documents extracted from conversation messages.
	SourceTypeMessage SourceType = "message"
)

// Document is an indexable unit of extracted text.
//
// A Document exists if and only if its source unit carries non-empty
// indexable text. It is owned 1:1 by that unit and is replaced or removed
// when the unit is reprocessed with different text.
type Document struct {
	// ID is the identifier derived from the source unit. See DeriveDocumentID.
	ID string

	// SourceType is the kind of unit this document was extracted from.
	SourceType SourceType

	// SourceRef is the identifier of the owning unit (the message ID).
	SourceRef string

	// Text is the indexable text content.
	Text string

	// CreatedAtMs is the creation time of the source unit in epoch
	// milliseconds (the message send time).
	CreatedAtMs int64
}
