package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cairn/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`"(.*)"\n$`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	tcs := []struct {
		name     string
		input    string
		expected logger.LogLevel
	}{
		{"Debug", "DEBUG", logger.LogLevelDebug},
		{"Info", "INFO", logger.LogLevelInfo},
		{"Warn", "WARN", logger.LogLevelWarn},
		{"Error", "ERROR", logger.LogLevelError},
		{"Fatal", "FATAL", logger.LogLevelFatal},
		{"Zero-Value", "", logger.LogLevelUnk},
		{"Lowercased", "debug", logger.LogLevelUnk},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.input))
		})
	}
}

func TestCairnLoggerLevels(t *testing.T) {
	color.NoColor = true

	tcs := []struct {
		name  string
		ll    logger.LogLevel
		log   func(logger.Logger)
		level string
	}{
		{"Debug-At-Debug", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("test", nil) }, "[DEBUG]"},
		{"Debug-At-Info", logger.LogLevelInfo, func(l logger.Logger) { l.Debug("test", nil) }, ""},
		{"Info-At-Info", logger.LogLevelInfo, func(l logger.Logger) { l.Info("test", nil) }, "[INFO]"},
		{"Info-At-Error", logger.LogLevelError, func(l logger.Logger) { l.Info("test", nil) }, ""},
		{"Warn-At-Info", logger.LogLevelInfo, func(l logger.Logger) { l.Warn("test", nil) }, "[WARN]"},
		{"Warn-At-Fatal", logger.LogLevelFatal, func(l logger.Logger) { l.Warn("test", nil) }, ""},
		{"Error-At-Error", logger.LogLevelError, func(l logger.Logger) { l.Error("test", nil) }, "[ERROR]"},
		{"Fatal-At-Fatal", logger.LogLevelFatal, func(l logger.Logger) { l.Fatal("test", nil) }, "[FATAL]"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.ll))

			// Act
			tc.log(l)

			// Assert
			if tc.level == "" {
				require.Zero(t, b.String())
				return
			}

			require.Regexp(t, logLevelRegexp, b.String())
			require.Contains(t, b.String(), tc.level)
			require.Regexp(t, fpRegexp, b.String())
			require.Contains(t, b.String(), "'test'")
		})
	}
}

func TestCairnLoggerLogContext(t *testing.T) {
	// Arrange
	color.NoColor = true
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Error("oops", &logger.LogContext{Error: errors.New("gone wrong")})

	// Assert
	require.Contains(t, b.String(), "log_context:")
	matches := msgRegexp.FindStringSubmatch(b.String())
	require.Len(t, matches, 2)
	require.Contains(t, matches[1], `gone wrong`)
}

func TestCairnLoggerAddSkip(t *testing.T) {
	// Arrange
	color.NoColor = true
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))
	sl, ok := l.(logger.SkipLogger)
	require.True(t, ok)

	// Act
	skipped := sl.AddSkip(1)

	// Assert
	require.Equal(t, 1, skipped.Skip())
	require.Zero(t, sl.Skip())
}
