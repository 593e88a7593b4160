package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// writeConversation writes a conversation JSON file under dir.
func writeConversation(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewSource_MissingRoot(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestNewSource_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "file.json", "{}")

	_, err := NewSource(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInputNotFound)
}

func TestParse_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "chats/alice/message_1.json", `{
		"title": "Alice",
		"thread_path": "inbox/alice_123",
		"participants": [{"name": "Alice"}, {"name": "Bob"}],
		"messages": [
			{"sender_name": "Alice", "timestamp_ms": 1700000001000, "content": "hi Bob"},
			{"sender_name": "Bob", "timestamp_ms": 1700000002000, "content": "hi Alice", "reactions": [{"reaction": "x", "actor": "Alice"}]}
		]
	}`)

	source, err := NewSource(dir)
	require.NoError(t, err)

	batch, err := source.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "inbox/alice_123", batch.Conversation.ID)
	assert.Equal(t, "Alice", batch.Conversation.Title)
	assert.Equal(t, []string{"Alice", "Bob"}, batch.Conversation.Participants)

	require.Len(t, batch.Messages, 2)
	assert.Equal(t, "Alice", batch.Messages[0].SenderID)
	assert.Equal(t, int64(1700000001000), batch.Messages[0].SentAtMs)
	assert.Equal(t, "hi Bob", batch.Messages[0].Body)
	assert.Empty(t, batch.Messages[0].RawMeta)
	assert.NotEmpty(t, batch.Messages[0].ID)

	// Uninterpreted fields pass through as metadata.
	assert.Contains(t, batch.Messages[1].RawMeta, "reactions")
}

func TestParse_ConversationIDFallsBackToRelPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "chats/bob/message_1.json", `{
		"messages": [{"sender_name": "Bob", "timestamp_ms": 1700000000000, "content": "x"}]
	}`)

	source, err := NewSource(dir)
	require.NoError(t, err)

	batch, err := source.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "chats/bob/message_1.json", batch.Conversation.ID)
}

func TestParse_RepairsMangledText(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "c.json", `{
		"title": "CafÃ© crew",
		"messages": [{"sender_name": "JosÃ©", "timestamp_ms": 1700000000000, "content": "maÃ±ana"}]
	}`)

	source, err := NewSource(dir)
	require.NoError(t, err)

	batch, err := source.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Café crew", batch.Conversation.Title)
	assert.Equal(t, "José", batch.Messages[0].SenderID)
	assert.Equal(t, "mañana", batch.Messages[0].Body)
}

func TestParse_LegacySecondsTimestamp(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "c.json", `{
		"messages": [{"sender_name": "A", "timestamp": 1700000123, "content": "x"}]
	}`)

	source, err := NewSource(dir)
	require.NoError(t, err)

	batch, err := source.Parse(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000123000), batch.Messages[0].SentAtMs)
}

func TestParse_OrdinalsDisambiguateSharedTimestamps(t *testing.T) {
	dir := t.TempDir()
	path := writeConversation(t, dir, "c.json", `{
		"messages": [
			{"sender_name": "A", "timestamp_ms": 1700000000000, "content": "first"},
			{"sender_name": "A", "timestamp_ms": 1700000000000, "content": "second"},
			{"sender_name": "B", "timestamp_ms": 1700000000000, "content": "other sender"}
		]
	}`)

	source, err := NewSource(dir)
	require.NoError(t, err)

	batch, err := source.Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, batch.Messages, 3)

	var aOrdinals []int
	ids := make(map[string]bool)
	for _, m := range batch.Messages {
		ids[m.ID] = true
		if m.SenderID == "A" {
			aOrdinals = append(aOrdinals, m.Ordinal)
		}
	}
	assert.Equal(t, []int{0, 1}, aOrdinals)
	assert.Len(t, ids, 3, "identifiers must stay unique under timestamp collisions")
}

func TestParse_DeterministicIdentifiers(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"thread_path": "inbox/x",
		"messages": [{"sender_name": "A", "timestamp_ms": 1700000000000, "content": "same"}]
	}`
	path := writeConversation(t, dir, "c.json", content)

	source, err := NewSource(dir)
	require.NoError(t, err)

	first, err := source.Parse(context.Background(), path)
	require.NoError(t, err)
	second, err := source.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Messages[0].ID, second.Messages[0].ID)
}

func TestParse_Failures(t *testing.T) {
	dir := t.TempDir()
	source, err := NewSource(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: `{not json`},
		{name: "no messages", content: `{"title": "empty"}`},
		{name: "missing sender", content: `{"messages": [{"timestamp_ms": 1, "content": "x"}]}`},
		{name: "missing timestamp", content: `{"messages": [{"sender_name": "A", "content": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConversation(t, dir, tt.name+".json", tt.content)

			_, err := source.Parse(context.Background(), path)
			require.Error(t, err)

			var parseErr *domain.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, path, parseErr.Path)
		})
	}
}

func TestFiles_LexicalOrderAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeConversation(t, dir, "b/chat.json", `{}`)
	writeConversation(t, dir, "a/chat.json", `{}`)
	writeConversation(t, dir, "a/notes.txt", `ignore me`)
	writeConversation(t, dir, ".hidden/chat.json", `{}`)

	source, err := NewSource(dir)
	require.NoError(t, err)

	infoCh, errCh := source.Files(context.Background())
	var paths []string
	for info := range infoCh {
		rel, relErr := filepath.Rel(dir, info.Path)
		require.NoError(t, relErr)
		paths = append(paths, filepath.ToSlash(rel))
		assert.Positive(t, info.SizeBytes)
		assert.Positive(t, info.ModifiedAtMs)
	}
	require.NoError(t, <-errCh)

	assert.Equal(t, []string{"a/chat.json", "b/chat.json"}, paths)
}

func TestFiles_Cancellation(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeConversation(t, dir, filepath.Join("c", string(rune('a'+i))+".json"), `{}`)
	}

	source, err := NewSource(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	infoCh, errCh := source.Files(ctx)

	<-infoCh
	cancel()

	for range infoCh { //nolint:revive // drain until close
	}
	err = <-errCh
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
