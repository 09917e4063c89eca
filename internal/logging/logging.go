package logging

import (
	"fmt"
	"io"
	"os"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/config"
)

// Setup configures the global zerolog logger. Console format writes
// human-readable output to stderr; anything else stays JSON. When a log file
// is configured it is rotated by time and both sinks receive every event.
func Setup(cfg config.LoggingConfig) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if cfg.File != "" {
		rotated, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithMaxAge(cfg.MaxAge),
			rotatelogs.WithRotationTime(cfg.RotationTime),
		)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(out, rotated)
	}

	log.Logger = log.Output(out)
	return nil
}
