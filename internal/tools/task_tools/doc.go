// Package task_tools registers the task management MCP tools. Creation
// is always available; update, complete, and delete require the server
// to run with destructive operations enabled.
package task_tools
