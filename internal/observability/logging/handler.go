package logging

import (
	"context"
	"log/slog"
)

// contextHandler decorates records with request-scoped attributes carried
// in the context.
type contextHandler struct {
	next          slog.Handler
	defaultModule Module
	gcpProjectID  string
}

func newContextHandler(next slog.Handler, defaultModule Module, gcpProjectID string) *contextHandler {
	return &contextHandler{
		next:          next,
		defaultModule: defaultModule,
		gcpProjectID:  gcpProjectID,
	}
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if ctx != nil {
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			record.AddAttrs(slog.String("request_id", requestID))
		}

		module := ModuleFromContext(ctx)
		if module == "" {
			module = h.defaultModule
		}
		if module != "" {
			record.AddAttrs(slog.String("module", string(module)))
		}

		record.AddAttrs(gcpTraceAttrs(ctx, h.gcpProjectID)...)
	}

	return h.next.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newContextHandler(h.next.WithAttrs(attrs), h.defaultModule, h.gcpProjectID)
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return newContextHandler(h.next.WithGroup(name), h.defaultModule, h.gcpProjectID)
}
