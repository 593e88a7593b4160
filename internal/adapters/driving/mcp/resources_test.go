package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "valid document URI",
			uri:  "mempack://documents/d_0011223344556677",
			want: "d_0011223344556677",
		},
		{
			name: "wrong scheme",
			uri:  "other://documents/d_0011223344556677",
			want: "",
		},
		{
			name: "missing document ID",
			uri:  "mempack://documents/",
			want: "",
		},
		{
			name: "manifest URI is not a document",
			uri:  "mempack://manifest",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDocumentID(tt.uri))
		})
	}
}

func TestServer_handleManifestResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns manifest JSON", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Manifests: &mockManifestStore{
				manifest: &domain.Manifest{
					SchemaVersion: domain.SchemaVersion,
					Counts:        domain.Counts{Messages: 5, Documents: 4},
					ContentDigest: "sha256:abcd",
				},
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "mempack://manifest"},
		}
		result, err := server.handleManifestResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "\"schemaVersion\": 1")
		assert.Contains(t, result.Contents[0].Text, "sha256:abcd")
	})

	t.Run("missing manifest store returns not found", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "mempack://manifest"},
		}
		_, err = server.handleManifestResource(ctx, req)

		assert.Error(t, err)
	})

	t.Run("incomplete pack surfaces the error", func(t *testing.T) {
		ports := &Ports{
			Search:    &mockSearchService{},
			Manifests: &mockManifestStore{err: domain.ErrIncompletePack},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "mempack://manifest"},
		}
		_, err = server.handleManifestResource(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrIncompletePack)
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document text", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Reader: &mockPackReader{
				document: &domain.Document{
					ID:   "d_0011223344556677",
					Text: "the quick brown fox",
				},
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "mempack://documents/d_0011223344556677"},
		}
		result, err := server.handleDocumentResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "the quick brown fox", result.Contents[0].Text)
	})

	t.Run("unknown document surfaces the error", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Reader: &mockPackReader{err: domain.ErrNotFound},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "mempack://documents/d_missing"},
		}
		_, err = server.handleDocumentResource(ctx, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed URI returns not found", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Reader: &mockPackReader{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "mempack://documents/"},
		}
		_, err = server.handleDocumentResource(ctx, req)

		assert.Error(t, err)
	})
}
