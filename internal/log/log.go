// Package log provides the structured logger used across the engine.
// It wraps zerolog behind a small, stable surface so call sites never
// import zerolog directly.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger zerolog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Init configures the package-level logger. level is one of "debug",
// "info", "warn", "error"; output is "stdout", "stderr", or a file path.
func Init(level, output string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	zlevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		zlevel = zerolog.InfoLevel
	}

	var dest io.Writer
	switch {
	case w != nil:
		dest = w
	case output == "stdout":
		dest = os.Stdout
	case output == "stderr", output == "":
		dest = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			dest = os.Stderr
		} else {
			dest = f
		}
	}

	logger = zerolog.New(dest).Level(zlevel).With().Timestamp().Logger()
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

// Error logs an error value directly.
func Error(err error) {
	logger.Error().Msg(err.Error())
}

// Debugw logs a message with structured key-value pairs at debug level.
func Debugw(msg string, kv ...any) {
	event(logger.Debug(), kv...).Msg(msg)
}

// Warnw logs a message with structured key-value pairs at warn level.
func Warnw(msg string, kv ...any) {
	event(logger.Warn(), kv...).Msg(msg)
}

func event(e *zerolog.Event, kv ...any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}
