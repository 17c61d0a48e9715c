// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"dockman/internal/config"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a config file populated with the defaults
	initCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Create a dockman config file in the current directory",
		Long: `Create a dockman config file populated with the built-in defaults.

The file is written to ./dockman.toml unless a path is given. Edit it
to set your image name, registry and build options; every value can
still be overridden per field with DOCKMAN_* environment variables or
CLI flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.LocalConfigFileName
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.WriteTemplate(path, initForce); err != nil {
		return wrapExitError(err)
	}

	absPath, _ := filepath.Abs(path)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the config file to set image_name and registry_url")
	fmt.Println("  2. Run 'dockman build' to build the image")
	fmt.Println("  3. Run 'dockman push' to publish it")

	return nil
}
