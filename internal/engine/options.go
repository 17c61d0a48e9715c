// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"fmt"
	"strings"
)

type (
	// BuildOptions describes one image build.
	BuildOptions struct {
		// Reference is the full image reference to tag the result with.
		Reference string
		// Dockerfile is the path to the Dockerfile. Relative paths are
		// passed through as-is; resolution against a working directory is
		// the engine's concern.
		Dockerfile string
		// ContextDir is the build context directory, "." when unspecified.
		ContextDir string
		// Platform selects the target platform(s), comma-separated.
		Platform string
		// Builder names the buildx builder to select before building.
		// Empty or "default" keeps the currently selected builder.
		Builder string
		// CacheTo and CacheFrom configure external build cache endpoints.
		CacheTo   string
		CacheFrom string
		// BuildArgs are build-time variables, emitted in input order.
		BuildArgs []EnvVar
		// NoCache disables the build cache.
		NoCache bool
		// Pull always attempts to pull newer base images.
		Pull bool
		// Push sends the result to the registry instead of the local store.
		Push bool
	}

	// RunOptions describes one container start.
	RunOptions struct {
		// Reference is the image reference to run.
		Reference string
		// Ports, Volumes and Env are emitted in input order; the order is
		// preserved so the generated argv is reproducible.
		Ports   []PortMapping
		Volumes []VolumeMount
		Env     []EnvVar
		// Name is the container name, optional.
		Name string
		// Detach runs the container in the background.
		Detach bool
		// Remove deletes the container when it stops.
		Remove bool
	}

	// PushOptions describes one registry publish. The local image is
	// retagged with the registry-qualified reference before pushing.
	PushOptions struct {
		SourceRef string
		TargetRef string
	}

	// PullOptions describes one registry fetch.
	PullOptions struct {
		Reference string
	}

	// LoginOptions describes one registry authentication. The password is
	// never placed in the argument vector; it travels on the invocation's
	// stdin payload.
	LoginOptions struct {
		Registry string
		Username string
		Password string
	}

	// CleanScope selects which resource classes a clean operation prunes.
	CleanScope struct {
		Containers bool
		Images     bool
		Volumes    bool
		BuildCache bool
	}
)

// CleanScopeAll returns a scope covering every prunable resource class.
func CleanScopeAll() CleanScope {
	return CleanScope{Containers: true, Images: true, Volumes: true, BuildCache: true}
}

// IsEmpty reports whether the scope selects nothing.
func (s CleanScope) IsEmpty() bool {
	return !s.Containers && !s.Images && !s.Volumes && !s.BuildCache
}

// Validate returns an InvalidRequestError if any field is malformed.
func (o BuildOptions) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Reference) == "" {
		errs = append(errs, fmt.Errorf("%w: image reference must be non-empty", ErrInvalidRequest))
	}
	for _, a := range o.BuildArgs {
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return invalidRequest("build", errs)
}

// Validate returns an InvalidRequestError if any field is malformed.
func (o RunOptions) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Reference) == "" {
		errs = append(errs, fmt.Errorf("%w: image reference must be non-empty", ErrInvalidRequest))
	}
	if o.Name != "" && strings.ContainsAny(o.Name, " \t\n") {
		errs = append(errs, fmt.Errorf("%w: container name %q must not contain whitespace", ErrInvalidRequest, o.Name))
	}
	for _, p := range o.Ports {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, v := range o.Volumes {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range o.Env {
		if err := e.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return invalidRequest("run", errs)
}

// Validate returns an InvalidRequestError if either reference is empty.
func (o PushOptions) Validate() error {
	var errs []error
	if strings.TrimSpace(o.SourceRef) == "" {
		errs = append(errs, fmt.Errorf("%w: source image reference must be non-empty", ErrInvalidRequest))
	}
	if strings.TrimSpace(o.TargetRef) == "" {
		errs = append(errs, fmt.Errorf("%w: registry URL is required for push (set it in the config file, DOCKMAN_REGISTRY_URL, or --registry)", ErrInvalidRequest))
	}
	return invalidRequest("push", errs)
}

// Validate returns an InvalidRequestError if the reference is empty.
func (o PullOptions) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Reference) == "" {
		errs = append(errs, fmt.Errorf("%w: registry URL is required for pull (set it in the config file, DOCKMAN_REGISTRY_URL, or --registry)", ErrInvalidRequest))
	}
	return invalidRequest("pull", errs)
}

// Validate returns an InvalidRequestError unless registry, username and
// password are all present.
func (o LoginOptions) Validate() error {
	var errs []error
	if strings.TrimSpace(o.Registry) == "" {
		errs = append(errs, fmt.Errorf("%w: registry URL is required", ErrInvalidRequest))
	}
	if strings.TrimSpace(o.Username) == "" {
		errs = append(errs, fmt.Errorf("%w: username is required", ErrInvalidRequest))
	}
	if o.Password == "" {
		errs = append(errs, fmt.Errorf("%w: password is required", ErrInvalidRequest))
	}
	return invalidRequest("login", errs)
}
