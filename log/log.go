package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	charmlog "charm.land/log/v2"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs human-readable logs for terminals.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandlerFromStrings creates a [slog.Handler] from level and format
// strings.
func NewHandlerFromStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	logLvl, err := GetLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	logFmt, err := GetFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, logLvl, logFmt), nil
}

// NewHandler creates a [slog.Handler] with the specified level and format.
func NewHandler(w io.Writer, logLvl slog.Level, logFmt Format) slog.Handler {
	switch logFmt {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: logLvl,
		})

	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: logLvl,
		})

	case FormatText:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmLevel(logLvl),
			ReportTimestamp: true,
		})
	}

	return nil
}

// charmLevel maps a [slog.Level] to the charm logger's level scale.
func charmLevel(lvl slog.Level) charmlog.Level {
	switch {
	case lvl <= slog.LevelDebug:
		return charmlog.DebugLevel
	case lvl <= slog.LevelInfo:
		return charmlog.InfoLevel
	case lvl <= slog.LevelWarn:
		return charmlog.WarnLevel
	}

	return charmlog.ErrorLevel
}

// GetLevel parses a log level string and returns the corresponding
// [slog.Level].
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}

	return 0, ErrUnknownLogLevel
}

// GetFormat parses a log format string and returns the corresponding
// [Format].
func GetFormat(format string) (Format, error) {
	logFmt := Format(strings.ToLower(format))
	if slices.Contains(AllFormats(), logFmt) {
		return logFmt, nil
	}

	return "", ErrUnknownLogFormat
}

// AllFormats returns every supported [Format].
func AllFormats() []Format {
	return []Format{FormatJSON, FormatLogfmt, FormatText}
}

// AllLevelStrings returns every supported level string.
func AllLevelStrings() []string {
	return []string{"error", "warn", "info", "debug"}
}

// AllFormatStrings returns every supported format string.
func AllFormatStrings() []string {
	formats := AllFormats()
	out := make([]string, 0, len(formats))

	for _, f := range formats {
		out = append(out, string(f))
	}

	return out
}
