package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// rawConversation mirrors the on-disk conversation file shape.
type rawConversation struct {
	Title        string            `json:"title"`
	ThreadPath   string            `json:"thread_path"`
	Participants []rawParticipant  `json:"participants"`
	Messages     []json.RawMessage `json:"messages"`
}

type rawParticipant struct {
	Name string `json:"name"`
}

// knownMessageFields are interpreted by normalisation; everything else in
// a message object is carried through opaquely as RawMeta.
var knownMessageFields = map[string]bool{
	"sender_name":  true,
	"timestamp_ms": true,
	"timestamp":    true,
	"content":      true,
}

// Parse reads and normalises one conversation file.
// All failures come back as *domain.ParseError carrying the path.
func (s *Source) Parse(ctx context.Context, path string) (*domain.ConversationBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Cause: err}
	}

	var raw rawConversation
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ParseError{Path: path, Cause: fmt.Errorf("decoding conversation: %w", err)}
	}
	if len(raw.Messages) == 0 {
		return nil, &domain.ParseError{Path: path, Cause: fmt.Errorf("no messages in file")}
	}

	conv := domain.Conversation{
		ID:    s.conversationID(path, raw.ThreadPath),
		Title: RepairText(raw.Title),
	}
	for _, p := range raw.Participants {
		if p.Name != "" {
			conv.Participants = append(conv.Participants, RepairText(p.Name))
		}
	}

	messages, err := normaliseMessages(conv.ID, raw.Messages)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Cause: err}
	}

	return &domain.ConversationBatch{Conversation: conv, Messages: messages}, nil
}

// normaliseMessages converts raw message objects into domain messages with
// repaired text, epoch-ms timestamps, per-timestamp ordinals and
// deterministic identifiers.
func normaliseMessages(conversationID string, raws []json.RawMessage) ([]domain.Message, error) {
	messages := make([]domain.Message, 0, len(raws))

	for i, rawMsg := range raws {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rawMsg, &fields); err != nil {
			return nil, fmt.Errorf("decoding message %d: %w", i, err)
		}

		sender := stringField(fields, "sender_name")
		if sender == "" {
			return nil, fmt.Errorf("message %d: missing sender_name", i)
		}

		sentAtMs, err := messageTimestamp(fields)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}

		meta, err := passthroughMeta(fields)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}

		messages = append(messages, domain.Message{
			ConversationID: conversationID,
			SenderID:       RepairText(sender),
			SentAtMs:       sentAtMs,
			Body:           RepairText(stringField(fields, "content")),
			RawMeta:        meta,
		})
	}

	// Oldest first; a stable sort keeps the export's original order for
	// messages sharing a timestamp, which the ordinal then pins down.
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAtMs < messages[j].SentAtMs
	})

	assignOrdinals(messages)
	for i := range messages {
		messages[i].ID = domain.DeriveMessageID(
			messages[i].ConversationID,
			messages[i].SenderID,
			messages[i].SentAtMs,
			messages[i].Ordinal,
		)
	}

	return messages, nil
}

// assignOrdinals numbers messages within each (sender, timestamp)
// collision group, in stream order, starting at 0.
func assignOrdinals(messages []domain.Message) {
	type key struct {
		sender string
		sentAt int64
	}
	seen := make(map[key]int)
	for i := range messages {
		k := key{sender: messages[i].SenderID, sentAt: messages[i].SentAtMs}
		messages[i].Ordinal = seen[k]
		seen[k]++
	}
}

// messageTimestamp extracts the send time, preferring the millisecond
// field and coercing the legacy field's unit.
func messageTimestamp(fields map[string]json.RawMessage) (int64, error) {
	if raw, ok := fields["timestamp_ms"]; ok {
		var ms int64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return 0, fmt.Errorf("invalid timestamp_ms: %w", err)
		}
		return ms, nil
	}
	if raw, ok := fields["timestamp"]; ok {
		var ts int64
		if err := json.Unmarshal(raw, &ts); err != nil {
			return 0, fmt.Errorf("invalid timestamp: %w", err)
		}
		return CoerceEpochMs(ts), nil
	}
	return 0, fmt.Errorf("missing timestamp")
}

// passthroughMeta marshals the uninterpreted message fields as a JSON
// object, or returns "" when there are none.
func passthroughMeta(fields map[string]json.RawMessage) (string, error) {
	extra := make(map[string]json.RawMessage)
	for k, v := range fields {
		if !knownMessageFields[k] {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return "", nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("marshalling passthrough metadata: %w", err)
	}
	return string(data), nil
}

// stringField decodes a string field, returning "" for absent or
// non-string values.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
