// Package logger supplies the loggers injected into subcommands.
package logger

import (
	"io"
	"log"
)

// Null returns a logger that drops everything it is given.
func Null() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Default returns the process-wide standard logger.
func Default() *log.Logger {
	return log.Default()
}
