// Package logging configures the process-wide zerolog logger for flake518.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvDebug raises the log level from Info to Debug when set.
//
// Any non-empty value enables debug output, including "false" and "0".
// This matches the presence-only check flake518 has always used.
const EnvDebug = "FLAKE518_DEBUG"

// Setup configures the global logger. The environment is injected so
// tests can control the debug toggle without mutating the process env.
func Setup(lookupEnv func(string) string) {
	level := zerolog.InfoLevel
	if lookupEnv(EnvDebug) != "" {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// Console output goes to stderr; stdout belongs to flake8.
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{consoleWriter}

	logFile := logFilePath()
	logFileHandle, err := openLogFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if err != nil {
		log.Debug().Err(err).Str("path", logFile).Msg("Logging to console only")
	}

	log.Debug().Str("level", level.String()).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// logFilePath returns the debug log file location under the XDG state dir.
func logFilePath() string {
	return filepath.Join(xdg.StateHome, "flake518", "flake518.log")
}

// openLogFile creates the log file and its parent directories.
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
