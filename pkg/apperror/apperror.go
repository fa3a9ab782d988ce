package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrTransport    = errors.New("transport failure")
	ErrEncode       = errors.New("request encoding failure")
	ErrDecode       = errors.New("response decoding failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrStatus       = errors.New("unexpected status")
)

// AppError is returned whenever an operation could not be classified from
// an HTTP response. Code holds the HTTP status if a response was received
// and 0 for purely local failures.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Code      int
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Code: %d, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s, Code: %d)", e.BaseError.Error(), e.Message, e.Details, e.Code)
}

func (e *AppError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.BaseError, e.Err}
	}
	return []error{e.BaseError}
}

func NewAppError(base error, msg, details string, code int, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Code: code, Err: err}
}

func NewTransport(details string, err error) *AppError {
	return NewAppError(ErrTransport, "Request could not be completed", details, 0, err)
}

func NewEncode(details string, err error) *AppError {
	return NewAppError(ErrEncode, "Request body could not be encoded", details, 0, err)
}

func NewDecode(code int, details string, err error) *AppError {
	return NewAppError(ErrDecode, "Response body could not be decoded", details, code, err)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, 0, err)
}

func NewStatus(code int, details string) *AppError {
	return NewAppError(ErrStatus, fmt.Sprintf("Unexpected status %d", code), details, code, nil)
}

// Code reports the HTTP status carried by err, or 0 when err is not an
// AppError or no response was received.
func Code(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// Message is the human readable part of err, falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		return appErr.Message
	}
	return err.Error()
}
