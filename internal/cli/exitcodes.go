package cli

import (
	"errors"

	"github.com/yaklabco/mdhl/pkg/runner"
)

// Exit codes for mdhl.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailures indicates the run completed but some files failed.
	ExitFailures = 1

	// ExitOutlineMismatch indicates outline --compare found disagreements.
	ExitOutlineMismatch = 2

	// ExitNoMatches indicates search found nothing.
	ExitNoMatches = 3

	// ExitInternalError indicates any other error.
	ExitInternalError = 70
)

// ExitCodeFromResult determines the exit code of a highlight run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitFailures
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrHighlightFailed):
		return ExitFailures
	case errors.Is(err, ErrOutlineMismatch):
		return ExitOutlineMismatch
	case errors.Is(err, ErrNoMatches):
		return ExitNoMatches
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only signals an exit code and needs no log line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrHighlightFailed) ||
		errors.Is(err, ErrOutlineMismatch) ||
		errors.Is(err, ErrNoMatches)
}
