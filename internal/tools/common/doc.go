// Package common provides shared helpers for tool handlers: argument
// extraction and the instrumentation wrapper that records metrics and
// structured logs for every tool invocation.
package common
