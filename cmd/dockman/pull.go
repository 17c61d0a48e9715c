// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"dockman/internal/engine"
	"dockman/internal/reference"

	"github.com/spf13/cobra"
)

// pullCmd fetches the configured image from the registry
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull the image from the registry",
	Long: `Pull <registry>/<image>:<tag> from the configured registry.

A registry URL must be configured.`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

func init() {
	pullCmd.Flags().StringP("image", "i", "", "image name")
	pullCmd.Flags().StringP("tag", "t", "", "image tag")
	pullCmd.Flags().String("registry", "", "registry URL")
}

func runPull(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return wrapExitError(err)
	}

	ref := ""
	if s.RegistryURL != "" {
		ref, err = reference.Qualified(s.RegistryURL, s.ImageName, s.DefaultTag)
		if err != nil {
			return wrapExitError(err)
		}
	}

	if err := newEngine().Pull(cmd.Context(), engine.PullOptions{Reference: ref}, quiet); err != nil {
		return wrapExitError(err)
	}

	fmt.Printf("%s Pulled %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(ref))
	return nil
}
