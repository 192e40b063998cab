package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
)

// newJSONHandler emits one JSON object per record. The time key is "ts" so
// log replay can order JSON lines alongside bracketed ones.
func newJSONHandler(w io.Writer, lvl slog.Leveler, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				return slog.String("ts", formatTimestamp(attr.Value.Time()))
			case slog.LevelKey:
				return slog.String(slog.LevelKey, levelLabel(attr.Value.Any().(slog.Level)))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					return slog.String(slog.SourceKey, filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
				}
			}
			return attr
		},
	})
}
