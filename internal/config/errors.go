package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrInvalidWidgetDefaults error if config widget.defaultconfig is not a JSON document.
	ErrInvalidWidgetDefaults = errors.New("toml config widget.defaultconfig must be valid json")
)
