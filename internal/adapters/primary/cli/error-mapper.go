package cli

import (
	"errors"

	"sg-cli/internal/config"
	"sg-cli/internal/core/domain"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks bad command line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// ExitCode maps a command error onto the process exit status.
func ExitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return ExitOK

	// User errors
	case errors.As(err, &ue),
		errors.Is(err, domain.ErrInvalidOpacity),
		errors.Is(err, domain.ErrInvalidHost),
		errors.Is(err, domain.ErrInvalidSource),
		errors.Is(err, config.ErrMissingConnString):
		return ExitUsage

	default:
		return ExitFailure
	}
}
