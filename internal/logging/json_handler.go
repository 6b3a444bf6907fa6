package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mkvsubstrip/internal/services"
)

// newJSONHandler writes one object per line for log shippers. Stage errors
// become {"message","stage","kind"} objects so failures can be filtered by
// pipeline stage, and durations are reported in seconds.
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})
}

func replaceJSONAttr(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		if attr.Value.Kind() == slog.KindTime {
			return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
		}
		return attr
	case slog.LevelKey:
		return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
	case slog.SourceKey:
		if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		}
		return attr
	}

	switch attr.Value.Kind() {
	case slog.KindDuration:
		return slog.Float64(attr.Key, attr.Value.Duration().Round(time.Millisecond).Seconds())
	case slog.KindAny:
		if err, ok := attr.Value.Any().(error); ok {
			return errorAttr(attr.Key, err)
		}
	}
	return attr
}

func errorAttr(key string, err error) slog.Attr {
	var stageErr *services.Error
	if !errors.As(err, &stageErr) {
		return slog.String(key, err.Error())
	}
	attrs := []any{slog.String("message", err.Error())}
	if stageErr.Stage != "" {
		attrs = append(attrs, slog.String("stage", stageErr.Stage))
	}
	if stageErr.Marker != nil {
		attrs = append(attrs, slog.String("kind", stageErr.Marker.Error()))
	}
	return slog.Group(key, attrs...)
}
