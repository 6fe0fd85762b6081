package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger options
type Config struct {
	Dev   bool   // dev -> human readable console; prod -> JSON
	Level string // trace, debug, info, warn, error
}

// Logger wraps zerolog for injection into services and handlers
type Logger struct {
	zl zerolog.Logger
}

// New creates a structured logger. Console output in dev mode, JSON otherwise.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Dev {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()

	// Redirect the global zerolog logger for libraries that use it
	log.Logger = zl

	return &Logger{zl: zl}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With creates a sub-logger with fixed fields
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
