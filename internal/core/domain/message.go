package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Conversation groups the messages parsed from one logical thread
// of the source export.
type Conversation struct {
	// ID identifies the conversation within the export
	// (thread path, chat identifier, or similar).
	ID string

	// Title is the human-readable conversation title, if the export has one.
	Title string

	// Participants lists the sender names seen in the export metadata.
	Participants []string
}

// Message is a single normalised message.
//
// Messages are keyed by a deterministic identifier derived from their
// content-identifying fields, so re-ingesting the same logical message
// always produces the same row.
type Message struct {
	// ID is the deterministic identifier. See DeriveMessageID.
	ID string

	// ConversationID links to the Conversation this message belongs to.
	ConversationID string

	// SenderID identifies the sender within the conversation.
	SenderID string

	// SentAtMs is the send time in epoch milliseconds.
	SentAtMs int64

	// Ordinal disambiguates messages from the same sender sharing
	// a timestamp. Assigned during normalisation, starting at 0.
	Ordinal int

	// Body is the normalised message text. May be empty for
	// non-text messages (attachments, reactions, calls).
	Body string

	// RawMeta is an opaque JSON passthrough of export fields that
	// normalisation does not interpret.
	RawMeta string
}

// ConversationBatch is the parse result for one source file:
// conversation metadata plus its normalised messages.
type ConversationBatch struct {
	Conversation Conversation
	Messages     []Message
}

// DeriveMessageID computes the deterministic message identifier from the
// content-identifying fields. It is a pure function: the same logical
// message always yields the same identifier, which makes upserts idempotent.
func DeriveMessageID(conversationID, senderID string, sentAtMs int64, ordinal int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "msg\x00%s\x00%s\x00%d\x00%d",
		conversationID, senderID, sentAtMs, ordinal))
	return "m_" + hex.EncodeToString(sum[:16])
}

// DeriveDocumentID computes the identifier of the Document owned by the
// message with the given identifier. The mapping is 1:1 and stable.
func DeriveDocumentID(messageID string) string {
	sum := sha256.Sum256([]byte("doc\x00" + messageID))
	return "d_" + hex.EncodeToString(sum[:16])
}
