// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"dockman/internal/engine"
	"dockman/internal/reference"

	"github.com/spf13/cobra"
)

var (
	runPorts   []string
	runVolumes []string
	runEnv     []string
	runName    string
	runDetach  bool
	runRemove  bool

	// runCmd starts a container from the configured image
	runCmd = &cobra.Command{
		Use:   "run [reference]",
		Short: "Run a container from an image",
		Long: `Run a container from an image.

Without an argument the configured <image>:<tag> is used. Port, volume
and environment flags are repeatable and validated before the engine
is invoked; the generated command preserves their order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringP("image", "i", "", "image name")
	runCmd.Flags().StringP("tag", "t", "", "image tag")
	runCmd.Flags().StringArrayVarP(&runPorts, "port", "p", nil, "port mapping (host:container[/protocol], repeatable)")
	runCmd.Flags().StringArrayVarP(&runVolumes, "volume", "v", nil, "volume mount (host:container[:options], repeatable)")
	runCmd.Flags().StringArrayVarP(&runEnv, "env", "e", nil, "environment variable (NAME=value, repeatable)")
	runCmd.Flags().StringVarP(&runName, "name", "n", "", "container name")
	runCmd.Flags().BoolVarP(&runDetach, "detach", "d", false, "run the container in the background")
	runCmd.Flags().BoolVar(&runRemove, "rm", false, "remove the container when it exits")
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return wrapExitError(err)
	}

	ref := ""
	if len(args) > 0 {
		ref = args[0]
	} else {
		ref, err = reference.Local(s.ImageName, s.DefaultTag)
		if err != nil {
			return wrapExitError(err)
		}
	}

	opts := engine.RunOptions{
		Reference: ref,
		Name:      runName,
		Detach:    runDetach,
		Remove:    runRemove,
	}

	// Collect every malformed flag value before giving up so the user can
	// fix them all in one go.
	var errs []error
	for _, p := range runPorts {
		pm, err := engine.ParsePortMapping(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		opts.Ports = append(opts.Ports, pm)
	}
	for _, v := range runVolumes {
		vm, err := engine.ParseVolumeMount(v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		opts.Volumes = append(opts.Volumes, vm)
	}
	for _, e := range runEnv {
		ev, err := engine.ParseEnvVar(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		opts.Env = append(opts.Env, ev)
	}
	if len(errs) > 0 {
		return wrapExitError(errors.Join(errs...))
	}

	return wrapExitError(newEngine().Run(cmd.Context(), opts, quiet))
}
