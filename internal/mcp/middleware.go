package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs all incoming method calls,
// naming the tool or resource for tools/call and resources/read.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			attrs = append(attrs, requestAttrs(req)...)

			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			} else {
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

func requestAttrs(req sdkmcp.Request) []slog.Attr {
	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		if r.Params != nil {
			return []slog.Attr{slog.String("tool", r.Params.Name)}
		}
	case *sdkmcp.ReadResourceRequest:
		if r.Params != nil {
			return []slog.Attr{slog.String("uri", r.Params.URI)}
		}
	case *sdkmcp.GetPromptRequest:
		if r.Params != nil {
			return []slog.Attr{slog.String("prompt", r.Params.Name)}
		}
	}
	return nil
}
