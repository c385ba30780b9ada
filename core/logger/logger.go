package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// Options configures the process logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

// Init replaces the process logger.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	current.Store(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// L returns the underlying slog logger.
func L() *slog.Logger {
	return current.Load()
}

// With returns a logger carrying the given key/value pairs.
func With(args ...any) *slog.Logger {
	return L().With(normalize(args)...)
}

func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

func log(level slog.Level, msg string, args ...any) {
	L().Log(context.Background(), level, msg, normalize(args)...)
}

// normalize accepts both key/value pairs and the bare `logger.Error("msg", err)`
// form. A leading value that is not a string key is recorded under "error"
// when it is an error and under "detail" otherwise.
func normalize(args []any) []any {
	if len(args) == 0 {
		return args
	}

	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		key, ok := args[i].(string)
		if !ok {
			if _, isErr := args[i].(error); isErr {
				out = append(out, "error", args[i])
			} else if attr, isAttr := args[i].(slog.Attr); isAttr {
				out = append(out, attr)
			} else {
				out = append(out, "detail", args[i])
			}
			continue
		}
		if i+1 >= len(args) {
			out = append(out, "detail", key)
			continue
		}
		out = append(out, key, args[i+1])
		i++
	}
	return out
}
