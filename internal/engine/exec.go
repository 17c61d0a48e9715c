// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Execute spawns the engine binary with the invocation's argument vector.
//
// With quiet unset, child stdout/stderr are wired straight to the engine's
// streams so long operations show progress as it is produced. With quiet
// set, combined output is captured and only surfaces through the returned
// EngineError on failure.
//
// A stdin payload is written and closed before output is read. At most one
// process is spawned per call and nothing is retried.
func (d *Docker) Execute(ctx context.Context, inv Invocation, quiet bool) error {
	cmd, runCtx, cancel, err := d.prepare(ctx, inv)
	if err != nil {
		return err
	}
	defer cancel()

	var captured bytes.Buffer
	if quiet {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	} else {
		cmd.Stdout = d.stdout
		cmd.Stderr = d.stderr
	}

	d.logger.Debug("executing", "cmd", d.binaryPath+" "+strings.Join(inv.Args, " "))

	if runErr := cmd.Run(); runErr != nil {
		return d.classify(runCtx, inv, runErr, captured.String())
	}
	return nil
}

// ExecuteOutput spawns the engine binary and returns its captured stdout.
// Stderr is captured separately so it can be preserved in an EngineError.
func (d *Docker) ExecuteOutput(ctx context.Context, inv Invocation) (string, error) {
	cmd, runCtx, cancel, err := d.prepare(ctx, inv)
	if err != nil {
		return "", err
	}
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	d.logger.Debug("executing", "cmd", d.binaryPath+" "+strings.Join(inv.Args, " "))

	if runErr := cmd.Run(); runErr != nil {
		return "", d.classify(runCtx, inv, runErr, stderr.String())
	}
	return stdout.String(), nil
}

// prepare builds the exec.Cmd for an invocation, applying the configured
// timeout, the stdin payload, and the extra child environment. The returned
// cancel func must be called to release the timeout context.
func (d *Docker) prepare(ctx context.Context, inv Invocation) (*exec.Cmd, context.Context, context.CancelFunc, error) {
	if d.binaryPath == "" {
		return nil, nil, nil, &SpawnError{Binary: DefaultBinary, Err: exec.ErrNotFound}
	}

	cancel := context.CancelFunc(func() {})
	if d.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
	}

	cmd := d.execCommand(ctx, d.binaryPath, inv.Args...)

	if len(inv.Env) > 0 {
		// exec.Cmd.Env nil means "inherit everything"; once set, only the
		// listed vars reach the child, so start from the full environment
		// unless the command factory already provided one.
		env := cmd.Env
		if env == nil {
			env = os.Environ()
		}
		for _, e := range inv.Env {
			env = append(env, e.String())
		}
		cmd.Env = env
	}

	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	return cmd, ctx, cancel, nil
}

// classify maps a failed cmd.Run into the error taxonomy. The stdin payload
// is never included; argument vectors are safe to report because secrets
// only ever travel on stdin.
func (d *Docker) classify(runCtx context.Context, inv Invocation, runErr error, output string) error {
	// A context-killed child reports a generic non-zero exit; the deadline
	// check must come first to tell a timeout apart from an engine failure.
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Args: inv.Args, Limit: d.timeout}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return &EngineError{Args: inv.Args, ExitCode: exitErr.ExitCode(), Output: output}
	}

	return &SpawnError{Binary: d.binaryPath, Err: runErr}
}
