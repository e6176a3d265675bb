// Package gormlogger routes gorm's SQL logging through zerolog.
package gormlogger

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// Writer implements gorm's logger.Writer on top of the global zerolog logger.
type Writer struct{}

// Printf logs one gorm line. Slow queries become warnings, failed ones errors.
func (Writer) Printf(format string, args ...interface{}) {
	log.WithLevel(levelOf(format, args)).Str("component", "gorm").Msgf(format, args...)
}

func levelOf(format string, args []interface{}) zerolog.Level {
	switch {
	case strings.Contains(format, "[error]"):
		return zerolog.ErrorLevel
	case strings.Contains(format, "[warn]"):
		return zerolog.WarnLevel
	}

	for _, a := range args {
		switch v := a.(type) {
		case error:
			return zerolog.ErrorLevel
		case string:
			if strings.HasPrefix(v, "SLOW SQL") {
				return zerolog.WarnLevel
			}
		}
	}

	return zerolog.DebugLevel
}

// LogLevel maps the zerolog level to the closest gorm level.
func LogLevel(l zerolog.Level) gormlogger.LogLevel {
	switch {
	case l == zerolog.Disabled || l == zerolog.NoLevel:
		return gormlogger.Silent
	case l <= zerolog.DebugLevel:
		return gormlogger.Info
	case l <= zerolog.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

// New returns a gorm logger using the current global zerolog level.
func New(slowThreshold time.Duration) gormlogger.Interface {
	return gormlogger.New(Writer{}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  LogLevel(zerolog.GlobalLevel()),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
