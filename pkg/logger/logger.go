// Package logger provides the slog handler and HTTP request logging used by the service.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

// Handler is a JSON slog handler that adds the request id and the
// OpenTelemetry trace and span ids found in the record's context.
type Handler struct {
	slog.Handler
}

// NewHandler creates a JSON handler writing to stdout.
// A nil opts logs at info level.
func NewHandler(opts *slog.HandlerOptions) *Handler {
	return NewHandlerWithWriter(os.Stdout, opts)
}

// NewHandlerWithWriter creates a JSON handler writing to w.
func NewHandlerWithWriter(w io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}

	return &Handler{Handler: slog.NewJSONHandler(w, opts)}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			r.AddAttrs(slog.String("request_id", reqID))
		}

		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			r.AddAttrs(
				slog.String("trace_id", sc.TraceID().String()),
				slog.String("span_id", sc.SpanID().String()),
			)
		}
	}

	return h.Handler.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel maps debug, info, warn and error to a slog level. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
