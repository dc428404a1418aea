// Package errs defines the coded errors the notes API surfaces to clients.
package errs

import (
	"errors"
	"net/http"
)

type Code string

const (
	InvalidArgument Code = "invalid_argument"
	NotFound        Code = "not_found"
	Internal        Code = "internal"
)

// Error is an application error carrying a client-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidation(message string) error {
	return &Error{Code: InvalidArgument, Message: message}
}

func NewNotFound(message string) error {
	return &Error{Code: NotFound, Message: message}
}

// CodeOf returns the code of the first coded error in err's chain, or
// Internal.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) && coded.Code != "" {
		return coded.Code
	}
	return Internal
}

// MessageOf returns the message safe to send to a client. Uncoded errors
// never leak their text.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) && coded.Code != Internal && coded.Message != "" {
		return coded.Message
	}
	return "internal server error"
}

func HTTPStatus(code Code) int {
	switch code {
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
