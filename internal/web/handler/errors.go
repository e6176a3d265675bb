package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Kind classifies an API error for the client.
type Kind string

const (
	// KindValidation is a missing or malformed required field.
	KindValidation Kind = "ValidationError"
	// KindMalformed is a request body that can not be parsed.
	KindMalformed Kind = "MalformedRequest"
	// KindNotFound is an unknown review or route.
	KindNotFound Kind = "NotFound"
	// KindPersistence is a failed store operation.
	KindPersistence Kind = "PersistenceError"
	// KindUnauthorized is a missing or wrong shop access key.
	KindUnauthorized Kind = "Unauthorized"
	// KindInternal is any other server side failure.
	KindInternal Kind = "InternalError"
)

const (
	msgPersistence = "the request could not be stored or loaded, try again later"
	msgInternal    = "internal server error"
)

// Error is an API error rendered by ErrorHandler.
type Error struct {
	Status  int               `json:"-"`
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.cause.Error()
	}

	return string(e.Kind) + ": " + e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error *Error `json:"error"`
}

// Validation returns a 400 error listing the offending fields.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Kind: KindValidation, Message: message, Fields: fields}
}

// MissingField returns a 400 error for one absent required field.
func MissingField(field string) *Error {
	return Validation(field+" is required", map[string]string{field: "required"})
}

// Malformed returns a 400 error for an unparsable request body.
func Malformed(err error) *Error {
	return &Error{
		Status:  fiber.StatusBadRequest,
		Kind:    KindMalformed,
		Message: "request body is not valid JSON",
		cause:   err,
	}
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Kind: KindNotFound, Message: message}
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return &Error{Status: fiber.StatusUnauthorized, Kind: KindUnauthorized, Message: message}
}

// Persistence returns a 500 error. The cause is logged, never sent.
func Persistence(err error) *Error {
	return &Error{Status: fiber.StatusInternalServerError, Kind: KindPersistence, Message: msgPersistence, cause: err}
}

// fromFiber maps errors raised by fiber itself, like unknown routes or too large bodies.
func fromFiber(fe *fiber.Error) *Error {
	switch fe.Code {
	case fiber.StatusNotFound:
		return NotFound(fe.Message)
	case fiber.StatusRequestEntityTooLarge:
		return &Error{Status: fe.Code, Kind: KindMalformed, Message: fe.Message}
	}

	if fe.Code >= fiber.StatusInternalServerError {
		return &Error{Status: fe.Code, Kind: KindInternal, Message: msgInternal, cause: fe}
	}

	return &Error{Status: fe.Code, Kind: KindValidation, Message: fe.Message}
}

// ErrorHandler renders every error as an ErrorResponse.
// Response headers set before the failure, like CORS, are kept.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		apiErr *Error
		fe     *fiber.Error
	)

	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &fe):
		apiErr = fromFiber(fe)
	default:
		apiErr = &Error{Status: fiber.StatusInternalServerError, Kind: KindInternal, Message: msgInternal, cause: err}
	}

	if apiErr.Status >= fiber.StatusInternalServerError {
		log.Error().Err(apiErr.cause).
			Str("kind", string(apiErr.Kind)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}

	if http.StatusText(apiErr.Status) == "" {
		apiErr.Status = fiber.StatusInternalServerError
	}

	return c.Status(apiErr.Status).JSON(ErrorResponse{Error: apiErr})
}
