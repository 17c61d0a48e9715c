// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidRequest is the sentinel error wrapped by InvalidRequestError.
	// It marks failures caught by request validation, before any process spawns.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEngineFailed is the sentinel error wrapped by EngineError.
	ErrEngineFailed = errors.New("engine reported failure")

	// ErrSpawnFailed is the sentinel error wrapped by SpawnError.
	ErrSpawnFailed = errors.New("engine binary could not be started")

	// ErrTimedOut is the sentinel error wrapped by TimeoutError.
	ErrTimedOut = errors.New("operation timed out")
)

type (
	// InvalidRequestError is returned when an operation request fails
	// validation. It wraps the individual field errors for inspection and
	// guarantees that no engine process was spawned.
	InvalidRequestError struct {
		Op        string
		FieldErrs []error
	}

	// EngineError is returned when the engine binary ran but exited non-zero.
	// Output holds the captured combined output when the operation ran in
	// quiet mode; it is empty when output was streamed directly.
	EngineError struct {
		Args     []string
		ExitCode int
		Output   string
	}

	// SpawnError is returned when the engine binary is missing or not
	// executable. It is distinct from EngineError so callers can point the
	// user at installation instead of at the operation.
	SpawnError struct {
		Binary string
		Err    error
	}

	// TimeoutError is returned when a configured wall-clock limit expired
	// before the engine finished. The child process has been terminated.
	TimeoutError struct {
		Args  []string
		Limit time.Duration
	}
)

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	if len(e.FieldErrs) == 1 {
		return fmt.Sprintf("%s: %s", e.Op, e.FieldErrs[0])
	}
	return fmt.Sprintf("%s: %d invalid value(s): %s", e.Op, len(e.FieldErrs), errors.Join(e.FieldErrs...))
}

// Unwrap returns the sentinel and field errors so callers can use errors.Is
// against both ErrInvalidRequest and the specific field sentinels.
func (e *InvalidRequestError) Unwrap() []error {
	return append([]error{ErrInvalidRequest}, e.FieldErrs...)
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	msg := fmt.Sprintf("engine command %q exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Output != "" {
		msg += ": " + strings.TrimSpace(e.Output)
	}
	return msg
}

// Unwrap returns ErrEngineFailed so callers can use errors.Is.
func (e *EngineError) Unwrap() error { return ErrEngineFailed }

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("cannot execute %q: %v (is the engine installed and on PATH?)", e.Binary, e.Err)
}

// Unwrap returns the sentinel and the underlying cause.
func (e *SpawnError) Unwrap() []error { return []error{ErrSpawnFailed, e.Err} }

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("engine command %q exceeded the %s time limit and was terminated",
		strings.Join(e.Args, " "), e.Limit)
}

// Unwrap returns ErrTimedOut so callers can use errors.Is.
func (e *TimeoutError) Unwrap() error { return ErrTimedOut }

// invalidRequest wraps field errors into an InvalidRequestError, or returns
// nil when there are none.
func invalidRequest(op string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &InvalidRequestError{Op: op, FieldErrs: errs}
}
