// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"dockman/internal/engine"
	"dockman/internal/reference"

	"github.com/spf13/cobra"
)

var (
	buildNoCache    bool
	buildPull       bool
	buildPush       bool
	buildContextDir string
	buildArgValues  []string

	// buildCmd builds an image from the configured Dockerfile
	buildCmd = &cobra.Command{
		Use:   "build [context]",
		Short: "Build a container image",
		Long: `Build a container image with buildx.

The image is tagged <image>:<tag> and loaded into the local store.
With --push the result is tagged with the registry prefix and sent
straight to the registry instead.

The build context defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringP("image", "i", "", "image name")
	buildCmd.Flags().StringP("tag", "t", "", "image tag")
	buildCmd.Flags().StringP("dockerfile", "f", "", "path to the Dockerfile")
	buildCmd.Flags().String("registry", "", "registry URL (required with --push)")
	buildCmd.Flags().String("platform", "", "target platform(s), comma-separated")
	buildCmd.Flags().String("builder", "", "buildx builder to use")
	buildCmd.Flags().String("cache-to", "", "build cache export destination")
	buildCmd.Flags().String("cache-from", "", "build cache import source")
	buildCmd.Flags().StringVarP(&buildContextDir, "context", "c", "", "build context directory")
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "build without cache")
	buildCmd.Flags().BoolVar(&buildPull, "pull", false, "always pull newer base images")
	buildCmd.Flags().BoolVar(&buildPush, "push", false, "push the result to the registry instead of loading it")
	buildCmd.Flags().StringArrayVar(&buildArgValues, "build-arg", nil, "build-time variable (NAME=value, repeatable)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return wrapExitError(err)
	}

	ref, err := buildReference(s.RegistryURL, s.ImageName, s.DefaultTag, buildPush)
	if err != nil {
		return wrapExitError(err)
	}

	buildArgs, err := parseEnvVars(buildArgValues)
	if err != nil {
		return wrapExitError(err)
	}

	// The positional argument wins over --context when both are given.
	contextDir := buildContextDir
	if len(args) > 0 {
		contextDir = args[0]
	}

	opts := engine.BuildOptions{
		Reference:  ref,
		Dockerfile: s.Dockerfile,
		ContextDir: contextDir,
		Platform:   s.Platform,
		Builder:    s.Builder,
		CacheTo:    s.CacheTo,
		CacheFrom:  s.CacheFrom,
		BuildArgs:  buildArgs,
		NoCache:    buildNoCache,
		Pull:       buildPull,
		Push:       buildPush,
	}

	if err := newEngine().Build(cmd.Context(), opts, quiet); err != nil {
		return wrapExitError(err)
	}

	if buildPush {
		fmt.Printf("%s Built and pushed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(ref))
	} else {
		fmt.Printf("%s Built %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(ref))
	}
	return nil
}

// buildReference picks the reference a build is tagged with: the local
// name:tag form normally, the registry-qualified form when pushing.
func buildReference(registry, image, tag string, push bool) (string, error) {
	if !push {
		return reference.Local(image, tag)
	}
	if registry == "" {
		return "", fmt.Errorf("%w: registry URL is required for --push (set it in the config file, DOCKMAN_REGISTRY_URL, or --registry)", engine.ErrInvalidRequest)
	}
	return reference.Qualified(registry, image, tag)
}

// parseEnvVars parses NAME=value strings, joining all failures so the user
// sees every malformed entry at once.
func parseEnvVars(values []string) ([]engine.EnvVar, error) {
	var (
		vars []engine.EnvVar
		errs []error
	)
	for _, v := range values {
		ev, err := engine.ParseEnvVar(v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vars = append(vars, ev)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return vars, nil
}
