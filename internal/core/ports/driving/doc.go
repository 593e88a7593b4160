// Package driving defines the driving (primary) ports of the hexagonal
// architecture: the use-case interfaces offered to delivery adapters
// (CLI, MCP, TUI).
package driving
