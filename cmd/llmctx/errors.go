package main

import (
	"errors"
	"fmt"
)

// Exit code taxonomy. Grounded on the teacher's internal/search/errors.go
// sentinel-error style, pared down from its recoverable/skip machinery
// (that lives in internal/ingest's own warning list instead) to the small
// fixed set of process-exit outcomes the CLI needs.
const (
	ExitSuccess      = 0
	ExitUsage        = 2
	ExitBudget       = 3
	ExitIO           = 1
)

var (
	// ErrUsage wraps malformed flags, empty attached values, and unknown
	// options. Any error satisfying errors.Is(err, ErrUsage) exits 2.
	ErrUsage = errors.New("usage error")

	// ErrBudgetExceeded is returned by the budget audit step. Exits 3.
	ErrBudgetExceeded = errors.New("token budget exceeded")

	// ErrNoInput marks the case where neither -f paths, stdin, nor -c/-s
	// leave anything for the pipeline to assemble into a document; run maps
	// it through exitCode. Exits 2.
	ErrNoInput = errors.New("no input provided")
)

// usageErrorf builds an ErrUsage-wrapped error with a formatted message,
// matching the teacher's NewFileError/NewParseError constructor idiom.
func usageErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// exitCode maps a pipeline error to the process exit code it should
// produce. Unrecognized errors (plain I/O failures surfaced from the
// Emitter or Ingest Planner) exit 1.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrBudgetExceeded):
		return ExitBudget
	case errors.Is(err, ErrNoInput):
		return ExitUsage
	default:
		return ExitIO
	}
}
