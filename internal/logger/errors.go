package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnsupportedLevel is returned for a Log.LogLevel zerolog does not know.
	ErrUnsupportedLevel = errors.New("log level is not supported")

	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)

// ErrorHandler reports events zerolog failed to write. The logger itself is
// the broken part, so this goes straight to stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "landing: dropped log event: %v\n", err)
}
