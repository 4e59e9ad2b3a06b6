// Package logger is the process-wide diagnostic log for bsm-pricer.
//
// Everything goes to stderr through the standard log package so that stdout
// carries only the interactive prompts and the price line. Messages are gated
// by a single verbosity level:
//
//	Error < Warn < Info < Debug < Trace
//
// Example:
//
//	logger.SetVerbosity(int(logger.Debug))
//	logger.Debugf("d1=%f d2=%f", d1, d2)
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level is a logging verbosity level. Higher values log more.
type Level int

const (
	Error Level = iota // failures that end the run
	Warn               // degraded but continuing (e.g. history not written)
	Info               // lifecycle events
	Debug              // per-quote diagnostics
	Trace              // raw input lines
)

var current = Error

func init() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global level. Values are clamped to [Error, Trace].
func SetVerbosity(v int) {
	switch {
	case v < int(Error):
		v = int(Error)
	case v > int(Trace):
		v = int(Trace)
	}
	current = Level(v)
}

// Verbosity returns the active level.
func Verbosity() Level { return current }

// SetOutput redirects log output; tests use it to capture messages.
func SetOutput(w io.Writer) { log.SetOutput(w) }

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		// calldepth 3 reports the caller of Errorf/Infof/..., not this helper
		_ = log.Output(3, prefix+fmt.Sprintf(format, args...))
	}
}

// Errorf logs a failure that ends the run.
func Errorf(format string, args ...any) { logf(Error, "[ERROR] ", format, args...) }

// Warnf logs a problem the run continues past, such as an unwritable history.
func Warnf(format string, args ...any) { logf(Warn, "[WARN]  ", format, args...) }

// Infof logs lifecycle events like opening the history database.
func Infof(format string, args ...any) { logf(Info, "[INFO]  ", format, args...) }

// Debugf logs per-quote diagnostics and rejected input.
func Debugf(format string, args ...any) { logf(Debug, "[DEBUG] ", format, args...) }

// Tracef is for very chatty output such as every line read from stdin.
func Tracef(format string, args ...any) { logf(Trace, "[TRACE] ", format, args...) }
