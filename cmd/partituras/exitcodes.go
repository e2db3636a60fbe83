package main

import (
	"errors"

	"partituras/internal/domain"
)

// Exit codes. 2 and 4 mirror the 400 and 404 answers of the original web
// service.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure, store unavailable)
	ExitBadRequest  = 2 // Missing id, malformed request or arguments
	ExitConfigError = 3 // Configuration error (unreadable or invalid config)
	ExitNotFound    = 4 // Unknown score id
)

// codedError carries the exit code a command failed with.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	var coded *codedError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &coded):
		return coded.code
	// ErrMissingID wraps ErrNotFound, so it is checked first
	case errors.Is(err, domain.ErrMissingID):
		return ExitBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}
