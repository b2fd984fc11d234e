// Package project_tools registers the project management MCP tools.
// Listing, inspection, and creation are always available; update and
// delete require the server to run with destructive operations enabled.
package project_tools
