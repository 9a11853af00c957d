// Package errors defines the coded error used throughout tilegrid.
//
// Every failure the packer, the layout engine, the readers and the cache
// report carries a [Code]. The CLI prints [UserMessage]; the HTTP server
// maps the code to a status and returns both as JSON.
//
//	_, err := engine.FrameForIndex(40)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // index past the last tile
//	}
//
// Codes are matched against the outermost *Error in a chain, so wrapping
// with [Wrap] replaces the code callers see while keeping the cause.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Rejected input, options or files.
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidSize          Code = "INVALID_SIZE"
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"

	// Tile sequences the packer cannot place.
	ErrCodeIncompleteGroup Code = "INCOMPLETE_GROUP"
	ErrCodeUnpackable      Code = "UNPACKABLE"

	// Lookups.
	ErrCodeOutOfRange   Code = "OUT_OF_RANGE"
	ErrCodeNotPrepared  Code = "NOT_PREPARED"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Cache backends.
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Everything else.
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error, or "" if there is none.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without the
// code prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := outermost(err); ok {
		return e.Message
	}
	return err.Error()
}
