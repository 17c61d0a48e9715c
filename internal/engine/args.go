// SPDX-License-Identifier: MPL-2.0

package engine

type (
	// Invocation is the literal argument vector destined for the engine
	// binary, plus an optional stdin payload and extra child environment.
	// Builders produce identical Invocations for identical inputs.
	Invocation struct {
		// Args is the ordered argument list, excluding the binary itself.
		Args []string
		// Stdin is an optional payload written to the child's stdin and
		// closed before output is read. Used for credentials so they never
		// appear in process listings.
		Stdin string
		// Env are extra environment entries for the child process, emitted
		// in input order on top of the inherited environment.
		Env []EnvVar
	}
)

// imageListFormat matches the table layout the original manager printed.
const imageListFormat = "table {{.Repository}}\t{{.Tag}}\t{{.Size}}\t{{.CreatedAt}}"

// BuildArgs constructs the invocation for an image build.
//
// Generated command: buildx build -t <ref> [options] <context>
// The context directory is always the last positional argument.
func (d *Docker) BuildArgs(opts BuildOptions) Invocation {
	args := []string{"buildx", "build", "-t", opts.Reference}

	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}
	if opts.Platform != "" {
		args = append(args, "--platform", opts.Platform)
	}
	if opts.CacheTo != "" {
		args = append(args, "--cache-to", opts.CacheTo)
	}
	if opts.CacheFrom != "" {
		args = append(args, "--cache-from", opts.CacheFrom)
	}
	if opts.NoCache {
		args = append(args, "--no-cache")
	}
	if opts.Pull {
		args = append(args, "--pull")
	}
	for _, a := range opts.BuildArgs {
		args = append(args, "--build-arg", a.String())
	}

	// Without --push the image is loaded into the local store, matching
	// classic `docker build` behavior.
	if opts.Push {
		args = append(args, "--push")
	} else {
		args = append(args, "--load")
	}
	args = append(args, "--progress=plain")

	contextDir := opts.ContextDir
	if contextDir == "" {
		contextDir = "."
	}
	args = append(args, contextDir)

	return Invocation{
		Args: args,
		// BuildKit is required for buildx; force it on regardless of the
		// user's environment.
		Env: []EnvVar{{Name: "DOCKER_BUILDKIT", Value: "1"}},
	}
}

// RunArgs constructs the invocation for a container start. Port, volume and
// environment flags are emitted in input order, never sorted.
//
// Generated command: run [options] <image>
func (d *Docker) RunArgs(opts RunOptions) Invocation {
	args := []string{"run"}

	for _, p := range opts.Ports {
		args = append(args, "-p", p.String())
	}
	for _, v := range opts.Volumes {
		args = append(args, "-v", v.String())
	}
	for _, e := range opts.Env {
		args = append(args, "-e", e.String())
	}
	if opts.Detach {
		args = append(args, "-d")
	}
	if opts.Remove {
		args = append(args, "--rm")
	}
	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}
	args = append(args, opts.Reference)

	return Invocation{Args: args}
}

// TagArgs constructs the invocation that retags a local image with its
// registry-qualified reference.
func (d *Docker) TagArgs(opts PushOptions) Invocation {
	return Invocation{Args: []string{"tag", opts.SourceRef, opts.TargetRef}}
}

// PushArgs constructs the invocation that publishes an image.
func (d *Docker) PushArgs(opts PushOptions) Invocation {
	return Invocation{Args: []string{"push", opts.TargetRef}}
}

// PullArgs constructs the invocation that fetches an image.
func (d *Docker) PullArgs(opts PullOptions) Invocation {
	return Invocation{Args: []string{"pull", opts.Reference}}
}

// LoginArgs constructs the invocation that authenticates to a registry.
// The password is carried on the stdin payload only; it never appears in
// the argument vector.
func (d *Docker) LoginArgs(opts LoginOptions) Invocation {
	return Invocation{
		Args:  []string{"login", opts.Registry, "-u", opts.Username, "--password-stdin"},
		Stdin: opts.Password + "\n",
	}
}

// ListImagesArgs constructs the invocation that lists local images.
func (d *Docker) ListImagesArgs() Invocation {
	return Invocation{Args: []string{"images", "--format", imageListFormat}}
}

// ListBuildersArgs constructs the invocation that lists buildx builders.
func (d *Docker) ListBuildersArgs() Invocation {
	return Invocation{Args: []string{"buildx", "ls"}}
}

// InspectArgs constructs the invocation that dumps image metadata as JSON.
func (d *Docker) InspectArgs(reference string) Invocation {
	return Invocation{Args: []string{"image", "inspect", reference, "--format", "{{json .}}"}}
}

// ScanArgs constructs the invocation that scans an image for vulnerabilities.
func (d *Docker) ScanArgs(reference string) Invocation {
	return Invocation{Args: []string{"scan", reference}}
}

// CleanArgs constructs the prune invocations for each selected resource
// class, in a fixed order: containers, images, volumes, build cache.
func (d *Docker) CleanArgs(scope CleanScope) []Invocation {
	var invs []Invocation
	if scope.Containers {
		invs = append(invs, Invocation{Args: []string{"container", "prune", "-f"}})
	}
	if scope.Images {
		invs = append(invs, Invocation{Args: []string{"image", "prune", "-af"}})
	}
	if scope.Volumes {
		invs = append(invs, Invocation{Args: []string{"volume", "prune", "-f"}})
	}
	if scope.BuildCache {
		invs = append(invs, Invocation{Args: []string{"builder", "prune", "-af"}})
	}
	return invs
}

// builderUseArgs selects an existing buildx builder.
func (d *Docker) builderUseArgs(name string) Invocation {
	return Invocation{Args: []string{"buildx", "use", name}}
}

// builderCreateArgs creates and bootstraps a new buildx builder.
func (d *Docker) builderCreateArgs(name string) Invocation {
	return Invocation{Args: []string{"buildx", "create", "--name", name, "--use", "--bootstrap"}}
}
