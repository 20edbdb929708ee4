// Package log provides slog handlers.
package log

import (
	"context"
	"log/slog"

	"github.com/evenup-app/evenup/pkg/model"
)

// ContextHandler adds values from the [context.Context] to the
// [slog.Record]. It is passed to the [slog.Logger] used throughout the
// app. Public HTTP routes have no principal on the context, so it has to
// be ok with the keys not being set.
type ContextHandler struct {
	slog.Handler
}

func New(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if p, ok := model.GetPrincipalFromContext(ctx); ok {
		r.AddAttrs(slog.String("eventId", p.EventID.Hex()))
		if p.HasUser() {
			r.AddAttrs(slog.String("userId", p.UserID.Hex()))
		}
		if p.Host {
			r.AddAttrs(slog.Bool("host", true))
		}
	}

	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(h.Handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return New(h.Handler.WithGroup(name))
}
