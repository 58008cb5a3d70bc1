package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types for the admin console
var (
	// Authentication errors
	ErrAuthenticationMissing = errors.New("authentication missing")
	ErrAuthenticationExpired = errors.New("authentication expired")
	ErrInvalidCredentials    = errors.New("invalid credentials")

	// Transport and payload errors
	ErrTransport    = errors.New("network failure")
	ErrPayloadShape = errors.New("unexpected payload shape")

	// Page errors
	ErrValidation    = errors.New("invalid input")
	ErrDuplicateName = errors.New("name already exists")
	ErrNotConfirmed  = errors.New("action not confirmed")
	ErrNotFound      = errors.New("not found")

	// General errors
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// HTTPError is returned for every non-2xx response other than 401.
type HTTPError struct {
	StatusCode int
	Status     string // status line, e.g. "404 Not Found"
	Message    string // server supplied message, empty when the body had none
	JSONBody   bool   // the body parsed as JSON
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return "HTTP " + status
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
