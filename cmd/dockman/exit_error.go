// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"dockman/internal/engine"
	"dockman/internal/reference"
)

// Exit codes, stable for scripting: success is 0, engine failures are 1,
// rejected requests are 2, spawn failures are 3, timeouts are 4.
const (
	ExitCodeEngineFailure  = 1
	ExitCodeInvalidRequest = 2
	ExitCodeSpawnFailure   = 3
	ExitCodeTimeout        = 4
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an error to its exit code via the sentinel chain.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, engine.ErrInvalidRequest),
		errors.Is(err, reference.ErrInvalidReference),
		errors.Is(err, engine.ErrInvalidPortMapping),
		errors.Is(err, engine.ErrInvalidVolumeMount),
		errors.Is(err, engine.ErrInvalidEnvVar),
		errors.Is(err, engine.ErrInvalidImageTag):
		return ExitCodeInvalidRequest
	case errors.Is(err, engine.ErrSpawnFailed):
		return ExitCodeSpawnFailure
	case errors.Is(err, engine.ErrTimedOut):
		return ExitCodeTimeout
	default:
		return ExitCodeEngineFailure
	}
}

// wrapExitError attaches the exit code to a command error. RunE handlers
// return through this so Execute can surface the right process exit code.
func wrapExitError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitCodeFor(err), Err: err}
}
