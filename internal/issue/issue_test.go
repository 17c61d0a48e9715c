// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	cause := errors.New("dockerfile not found")
	err := NewErrorContext().
		WithOperation("build image").
		WithResource("Dockerfile.prod").
		WithSuggestion("Check the path passed via --dockerfile").
		Wrap(cause).
		BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *ActionableError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}

	msg := err.Error()
	for _, want := range []string{"failed to build image", "Dockerfile.prod", "dockerfile not found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "concise includes suggestions",
			verbose:  false,
			contains: []string{"failed to push image", "• Run 'dockman login' first"},
			excludes: []string{"Error chain:"},
		},
		{
			name:     "verbose includes error chain",
			verbose:  true,
			contains: []string{"Error chain:", "1. unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewErrorContext().
				WithOperation("push image").
				WithSuggestion("Run 'dockman login' first").
				Wrap(errors.New("unauthorized")).
				BuildError()

			var ae *ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *ActionableError, got %T", err)
			}
			out := ae.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Format(%v) = %q, want it to contain %q", tt.verbose, out, want)
				}
			}
			for _, notWant := range tt.excludes {
				if strings.Contains(out, notWant) {
					t.Errorf("Format(%v) = %q, should not contain %q", tt.verbose, out, notWant)
				}
			}
		})
	}
}
