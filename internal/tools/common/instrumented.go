package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tickdo/tickdo/internal/instrumentation"
	"github.com/tickdo/tickdo/internal/logging"
	"github.com/tickdo/tickdo/internal/server"
)

// ToolHandler is the handler signature mcp-go expects for tools.
type ToolHandler = mcpserver.ToolHandlerFunc

// InstrumentedToolHandler wraps a tool handler with metrics and
// structured logging. A result with IsError set counts as an error
// invocation even though the handler returned no Go error.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)

		logger := logging.WithTool(slog.Default(), toolName)
		if status == instrumentation.StatusError {
			logger.Warn("tool invocation failed",
				logging.Status(status),
				slog.Duration(logging.KeyDuration, duration),
				logging.Err(err))
		} else {
			logger.Debug("tool invocation completed",
				logging.Status(status),
				slog.Duration(logging.KeyDuration, duration))
		}

		return result, err
	}
}
