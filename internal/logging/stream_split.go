package logging

import (
	"context"
	"log/slog"
)

// streamSplitHandler routes records below threshold to low and the rest to
// high. Each record reaches exactly one handler.
type streamSplitHandler struct {
	low       slog.Handler
	high      slog.Handler
	threshold slog.Level
}

func newStreamSplitHandler(low, high slog.Handler, threshold slog.Level) slog.Handler {
	return &streamSplitHandler{low: low, high: high, threshold: threshold}
}

func (h *streamSplitHandler) pick(level slog.Level) slog.Handler {
	if level >= h.threshold {
		return h.high
	}
	return h.low
}

func (h *streamSplitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.pick(level).Enabled(ctx, level)
}

func (h *streamSplitHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.pick(record.Level).Handle(ctx, record)
}

func (h *streamSplitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &streamSplitHandler{
		low:       h.low.WithAttrs(attrs),
		high:      h.high.WithAttrs(attrs),
		threshold: h.threshold,
	}
}

func (h *streamSplitHandler) WithGroup(name string) slog.Handler {
	return &streamSplitHandler{
		low:       h.low.WithGroup(name),
		high:      h.high.WithGroup(name),
		threshold: h.threshold,
	}
}
