// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"dockman/internal/issue"

	"github.com/charmbracelet/log"
)

// DefaultBinary is the engine binary driven by this package.
const DefaultBinary = "docker"

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// It allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a Docker engine.
	Option func(*Docker)

	// Docker drives the Docker CLI. Argument vectors are built by the
	// *Args methods; Execute and ExecuteOutput spawn the binary and
	// classify failures. One Execute call spawns at most one process and
	// nothing is ever retried here.
	Docker struct {
		binaryPath  string
		execCommand ExecCommandFunc
		timeout     time.Duration
		stdout      io.Writer
		stderr      io.Writer
		logger      *log.Logger
	}
)

// WithBinaryPath overrides the resolved engine binary path.
func WithBinaryPath(path string) Option {
	return func(d *Docker) { d.binaryPath = path }
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(d *Docker) { d.execCommand = fn }
}

// WithTimeout sets a wall-clock limit per engine invocation. Zero means no
// limit. When the limit expires the child is terminated and the operation
// fails with a TimeoutError; it is never retried.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Docker) { d.timeout = timeout }
}

// WithStreams sets the writers that receive streamed child output.
func WithStreams(stdout, stderr io.Writer) Option {
	return func(d *Docker) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithLogger sets the logger used to announce invocations.
func WithLogger(logger *log.Logger) Option {
	return func(d *Docker) { d.logger = logger }
}

// NewDocker creates a Docker engine. The binary is resolved via PATH lookup;
// a missing binary is not an error here — it surfaces as a SpawnError on
// first execution so that arg-building stays usable without an engine.
func NewDocker(opts ...Option) *Docker {
	path, _ := exec.LookPath(DefaultBinary)
	d := &Docker{
		binaryPath:  path,
		execCommand: exec.CommandContext,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BuildxAvailable reports whether the buildx plugin responds.
func (d *Docker) BuildxAvailable(ctx context.Context) bool {
	_, err := d.ExecuteOutput(ctx, Invocation{Args: []string{"buildx", "version"}})
	return err == nil
}

// --- Lifecycle Operations ---

// Build builds an image. It validates the request, verifies the Dockerfile
// exists, makes sure the requested buildx builder is selected, and streams
// build output unless quiet is set.
func (d *Docker) Build(ctx context.Context, opts BuildOptions, quiet bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if err := d.checkDockerfile(opts); err != nil {
		return err
	}

	if err := d.checkBuildx(ctx); err != nil {
		return err
	}

	// A broken builder setup degrades to whatever builder is currently
	// selected; it must not abort the build.
	if err := d.EnsureBuilder(ctx, opts.Builder); err != nil {
		d.logger.Warn("builder setup failed, using the currently selected builder", "err", err)
	}

	d.logger.Info("building image",
		"ref", opts.Reference,
		"dockerfile", opts.Dockerfile,
		"platform", opts.Platform,
		"context", opts.ContextDir)

	return d.Execute(ctx, d.BuildArgs(opts), quiet)
}

// Run starts a container from the given image.
func (d *Docker) Run(ctx context.Context, opts RunOptions, quiet bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	d.logger.Info("starting container", "ref", opts.Reference, "detach", opts.Detach)

	return d.Execute(ctx, d.RunArgs(opts), quiet)
}

// Push retags the local image with its registry-qualified reference and
// publishes it. Two sequential invocations; the push is skipped when the
// retag fails.
func (d *Docker) Push(ctx context.Context, opts PushOptions, quiet bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if err := d.Execute(ctx, d.TagArgs(opts), quiet); err != nil {
		return err
	}

	d.logger.Info("pushing image", "ref", opts.TargetRef)

	return d.Execute(ctx, d.PushArgs(opts), quiet)
}

// Pull fetches an image from the registry.
func (d *Docker) Pull(ctx context.Context, opts PullOptions, quiet bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	d.logger.Info("pulling image", "ref", opts.Reference)

	return d.Execute(ctx, d.PullArgs(opts), quiet)
}

// Login authenticates to a registry. The password travels on stdin only.
func (d *Docker) Login(ctx context.Context, opts LoginOptions, quiet bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	d.logger.Info("logging in to registry", "registry", opts.Registry, "user", opts.Username)

	return d.Execute(ctx, d.LoginArgs(opts), quiet)
}

// ListImages returns the local image table.
func (d *Docker) ListImages(ctx context.Context) (string, error) {
	return d.ExecuteOutput(ctx, d.ListImagesArgs())
}

// ListBuilders returns the buildx builder table.
func (d *Docker) ListBuilders(ctx context.Context) (string, error) {
	return d.ExecuteOutput(ctx, d.ListBuildersArgs())
}

// Inspect returns image metadata as a JSON document.
func (d *Docker) Inspect(ctx context.Context, reference string) (string, error) {
	if strings.TrimSpace(reference) == "" {
		return "", invalidRequest("inspect", []error{fmt.Errorf("%w: image reference must be non-empty", ErrInvalidRequest)})
	}
	return d.ExecuteOutput(ctx, d.InspectArgs(reference))
}

// Scan runs a vulnerability scan against an image.
func (d *Docker) Scan(ctx context.Context, reference string) (string, error) {
	if strings.TrimSpace(reference) == "" {
		return "", invalidRequest("scan", []error{fmt.Errorf("%w: image reference must be non-empty", ErrInvalidRequest)})
	}
	return d.ExecuteOutput(ctx, d.ScanArgs(reference))
}

// Clean prunes the selected resource classes. Each prune runs even when an
// earlier one failed; the failures are joined into one error.
func (d *Docker) Clean(ctx context.Context, scope CleanScope, quiet bool) error {
	if scope.IsEmpty() {
		return invalidRequest("clean", []error{fmt.Errorf("%w: nothing selected to clean (use --containers, --images, --volumes, --build-cache or --all)", ErrInvalidRequest)})
	}

	var errs []error
	for _, inv := range d.CleanArgs(scope) {
		d.logger.Info("pruning", "cmd", strings.Join(inv.Args, " "))
		if err := d.Execute(ctx, inv, quiet); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EnsureBuilder makes sure the named buildx builder exists and is selected.
// An empty name or "default" leaves the current builder alone.
func (d *Docker) EnsureBuilder(ctx context.Context, name string) error {
	if name == "" || name == "default" {
		return nil
	}

	out, err := d.ExecuteOutput(ctx, d.ListBuildersArgs())
	if err != nil {
		return err
	}
	if strings.Contains(out, name) {
		return d.Execute(ctx, d.builderUseArgs(name), true)
	}

	d.logger.Info("creating buildx builder", "name", name)

	return d.Execute(ctx, d.builderCreateArgs(name), true)
}

// checkBuildx verifies the buildx plugin responds before a build starts, so
// a missing plugin fails with install guidance instead of a raw engine error.
func (d *Docker) checkBuildx(ctx context.Context) error {
	if d.BuildxAvailable(ctx) {
		return nil
	}
	return issue.NewErrorContext().
		WithOperation("build image").
		WithResource("buildx plugin").
		WithSuggestion("Install the buildx plugin: https://docs.docker.com/go/buildx/").
		WithSuggestion("On Debian/Ubuntu: apt-get install docker-buildx-plugin").
		Wrap(errors.New("the buildx plugin is not available")).
		BuildError()
}

// checkDockerfile verifies the Dockerfile exists before invoking the engine,
// so a typo'd path fails with a pointed message instead of a build error.
// An empty path is left for the engine to resolve against the context.
func (d *Docker) checkDockerfile(opts BuildOptions) error {
	if opts.Dockerfile == "" {
		return nil
	}
	if _, err := os.Stat(opts.Dockerfile); err != nil {
		return issue.NewErrorContext().
			WithOperation("build image").
			WithResource(opts.Dockerfile).
			WithSuggestion("Check the path passed via --dockerfile/-f").
			WithSuggestion("Create a Dockerfile in the build context, or point -f at an existing one").
			WithSuggestion("Run 'dockman init' to generate a config file with a dockerfile setting").
			Wrap(fmt.Errorf("dockerfile not found: %w", err)).
			BuildError()
	}
	return nil
}
