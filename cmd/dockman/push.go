// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"dockman/internal/engine"
	"dockman/internal/reference"

	"github.com/spf13/cobra"
)

// pushCmd publishes the configured image to the registry
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the image to the registry",
	Long: `Push the image to the configured registry.

The local <image>:<tag> is retagged as <registry>/<image>:<tag> and
then pushed. A registry URL must be configured.`,
	Args: cobra.NoArgs,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringP("image", "i", "", "image name")
	pushCmd.Flags().StringP("tag", "t", "", "image tag")
	pushCmd.Flags().String("registry", "", "registry URL")
}

func runPush(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return wrapExitError(err)
	}

	source, err := reference.Local(s.ImageName, s.DefaultTag)
	if err != nil {
		return wrapExitError(err)
	}

	// An empty target trips the engine's validation, which names the
	// config sources a registry URL can come from.
	target := ""
	if s.RegistryURL != "" {
		target, err = reference.Qualified(s.RegistryURL, s.ImageName, s.DefaultTag)
		if err != nil {
			return wrapExitError(err)
		}
	}

	opts := engine.PushOptions{SourceRef: source, TargetRef: target}
	if err := newEngine().Push(cmd.Context(), opts, quiet); err != nil {
		return wrapExitError(err)
	}

	fmt.Printf("%s Pushed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(target))
	return nil
}
