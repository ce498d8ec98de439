package logger

import (
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Config struct {
	Service string
	Version string
	Level   string
	Output  io.Writer
}

// New creates a logfmt logger with timestamp, caller and service fields,
// filtered at the configured level.
func New(config Config) kitlog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(out))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	logger = kitlog.With(logger, "caller", kitlog.DefaultCaller)
	logger = kitlog.With(logger, "service", config.Service, "version", config.Version)
	return level.NewFilter(logger, levelOption(config.Level))
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
