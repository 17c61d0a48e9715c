// SPDX-License-Identifier: MPL-2.0

// Package engine translates lifecycle operations (build, run, push, pull,
// login, list, clean) into Docker CLI argument vectors and executes them.
//
// Argument construction is pure and deterministic: the same request always
// yields the same Invocation, and every user-supplied token becomes a single
// argv element, never interpolated into a shell string. All request values
// are validated before any process is spawned. Execution failures are
// classified into a small taxonomy (EngineError, SpawnError, TimeoutError)
// so callers can map them to distinct exit codes.
package engine
