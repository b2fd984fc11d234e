// Package format renders tasks, projects, and query reports as the
// human-readable text returned in MCP tool results.
package format
