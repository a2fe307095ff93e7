package observability

import (
	"context"
	"log/slog"
)

// SlogObserver writes every event as one log record; the event type is the
// message and Data keys become attributes.
type SlogObserver struct {
	logger *slog.Logger
}

func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger.With("component", "observer")}
}

func (that *SlogObserver) OnEvent(ctx context.Context, event Event) {
	attrs := make([]slog.Attr, 0, len(event.Data)+3)
	attrs = append(attrs, slog.String("sessionID", event.SessionID))

	if event.Snapshot != nil {
		attrs = append(attrs,
			slog.String("outcome", event.Snapshot.Outcome.String()),
			slog.String("turn", string(event.Snapshot.Turn)),
		)
	}

	for k, v := range event.Data {
		attrs = append(attrs, slog.Any(k, v))
	}

	that.logger.LogAttrs(ctx, event.Type.Level(), string(event.Type), attrs...)
}
