package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned when Log.AppName is missing from the config.
	ErrAppNameIsEmpty = errors.New("config Log.AppName must be set")

	// ErrServiceNameIsEmpty is returned when Log.ServiceName is missing from the config.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName must be set")
)

// writeFailed is installed as zerolog.ErrorHandler. A lost log line goes to
// stderr, the configured writers may be the thing that broke.
func writeFailed(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "reviews: log event dropped: %v\n", err)
}
