// Package mcp provides an MCP (Model Context Protocol) server adapter for mempack.
// It enables AI assistants like Claude to query a memory pack directly.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
