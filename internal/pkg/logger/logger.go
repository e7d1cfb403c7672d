package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/httplog/v3"
)

// Options describe the service identity stamped on every record.
type Options struct {
	App     string
	Version string
	Env     string
	Level   string
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New builds a JSON logger whose keys follow the ECS schema used by the
// HTTP access log.
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}

// SetupDefault installs New's logger as the slog default and returns it.
func SetupDefault(w io.Writer, opts Options) *slog.Logger {
	l := New(w, opts)
	slog.SetDefault(l)
	return l
}
