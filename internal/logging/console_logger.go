package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ConsoleLogger writes human-readable log lines to stderr through zerolog.
// Output goes to stderr so it never mixes with scripts written to stdout.
type ConsoleLogger struct {
	logger zerolog.Logger
}

// NewConsoleLogger creates a ConsoleLogger on stderr.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	noColor := !term.IsTerminal(int(os.Stderr.Fd()))
	return NewConsoleLoggerTo(os.Stderr, verbose, noColor)
}

// NewConsoleLoggerTo creates a ConsoleLogger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbose, noColor bool) *ConsoleLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(w),
		NoColor:    noColor,
		TimeFormat: "15:04:05",
	}
	return &ConsoleLogger{
		logger: zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	emit(l.logger.Debug(), format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	emit(l.logger.Info(), format, args)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	emit(l.logger.Warn(), format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	emit(l.logger.Error(), format, args)
}

func emit(ev *zerolog.Event, format string, args []interface{}) {
	if len(args) > 0 {
		ev.Msgf(format, args...)
		return
	}
	ev.Msg(format)
}
