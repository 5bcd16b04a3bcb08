package logger

import (
    "io"
    "log/slog"
    "os"
    "strings"
)

// New creates a structured logger. format is "json" (default) or "text";
// level is one of debug, info, warn, error.
func New(level, format string) *slog.Logger {
    return NewWriter(os.Stdout, level, format)
}

func NewWriter(w io.Writer, level, format string) *slog.Logger {
    opts := &slog.HandlerOptions{Level: ParseLevel(level)}
    var handler slog.Handler
    if strings.EqualFold(format, "text") {
        handler = slog.NewTextHandler(w, opts)
    } else {
        handler = slog.NewJSONHandler(w, opts)
    }
    return slog.New(handler)
}

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
