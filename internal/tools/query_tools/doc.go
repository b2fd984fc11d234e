// Package query_tools registers the read-side MCP tools: the unified
// query_tasks tool and the convenience views (due today, overdue,
// search, engaged, next) built on the same query executor.
package query_tools
