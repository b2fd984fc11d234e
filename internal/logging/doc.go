// Package logging provides structured logging helpers built on
// log/slog.
//
// It defines the canonical attribute keys used across the codebase so
// that log lines stay consistent and greppable, plus small helpers for
// attaching operation/tool/status attributes and errors.
package logging
