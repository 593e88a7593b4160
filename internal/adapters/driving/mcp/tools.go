package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mempack/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find messages"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string  `json:"document_id"`
	SourceRef  string  `json:"source_ref"`
	Score      float64 `json:"score"`
	Snippet    string  `json:"snippet,omitempty"`
}

// VerifyInput is the input schema for the verify tool.
type VerifyInput struct {
	SmokeToken string `json:"smoke_token,omitempty" jsonschema:"term the smoke query searches for"`
}

// VerifyOutput is the output schema for the verify tool.
type VerifyOutput struct {
	OK             bool     `json:"ok"`
	FTSSampleDocID string   `json:"fts_sample_doc_id,omitempty"`
	Failures       []string `json:"failures,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_pack",
		Description: "Search the memory pack's full-text index",
	}, s.handleSearch)

	if s.ports.Verify != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "verify_pack",
			Description: "Check the memory pack's integrity without modifying it",
		}, s.handleVerify)
	}
}

// handleSearch handles the search_pack tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	opts := domain.SearchOptions{Limit: limit}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].DocumentID,
			SourceRef:  results[i].SourceRef,
			Score:      results[i].Score,
			Snippet:    results[i].Snippet,
		}
	}

	return nil, output, nil
}

// handleVerify handles the verify_pack tool invocation.
func (s *Server) handleVerify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, VerifyOutput, error) {
	if s.ports.Verify == nil {
		return nil, VerifyOutput{}, errors.New("verify service not configured")
	}

	report, err := s.ports.Verify.Verify(ctx, input.SmokeToken)
	if err != nil {
		return nil, VerifyOutput{}, err
	}

	return nil, VerifyOutput{
		OK:             report.OK,
		FTSSampleDocID: report.FTSSampleDocID,
		Failures:       report.Failures,
	}, nil
}
