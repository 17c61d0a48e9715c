// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"dockman/internal/engine"

	"github.com/spf13/cobra"
)

var (
	cleanContainers bool
	cleanImages     bool
	cleanVolumes    bool
	cleanBuildCache bool
	cleanAll        bool

	// cleanCmd prunes unused engine resources
	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Prune unused containers, images, volumes and build cache",
		Long: `Prune unused engine resources.

At least one resource class must be selected. Every selected class is
pruned even when an earlier prune fails; all failures are reported
together.`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}
)

func init() {
	cleanCmd.Flags().BoolVar(&cleanContainers, "containers", false, "prune stopped containers")
	cleanCmd.Flags().BoolVar(&cleanImages, "images", false, "prune unused images")
	cleanCmd.Flags().BoolVar(&cleanVolumes, "volumes", false, "prune unused volumes")
	cleanCmd.Flags().BoolVar(&cleanBuildCache, "build-cache", false, "prune the build cache")
	cleanCmd.Flags().BoolVarP(&cleanAll, "all", "a", false, "prune every resource class")
}

func runClean(cmd *cobra.Command, args []string) error {
	scope := engine.CleanScope{
		Containers: cleanContainers,
		Images:     cleanImages,
		Volumes:    cleanVolumes,
		BuildCache: cleanBuildCache,
	}
	if cleanAll {
		scope = engine.CleanScopeAll()
	}

	if err := newEngine().Clean(cmd.Context(), scope, quiet); err != nil {
		return wrapExitError(err)
	}

	fmt.Printf("%s Pruned\n", SuccessStyle.Render("✓"))
	return nil
}
