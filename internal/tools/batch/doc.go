// Package batch provides helpers for tools that accept a single ID or
// an array of IDs, running the operation per item and aggregating the
// per-item outcomes into one JSON result.
package batch
