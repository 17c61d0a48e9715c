// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"dockman/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `dockman config` command tree. Subcommands
// that read configuration go through the given provider.
func newConfigCommand(provider config.Provider) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dockman configuration",
		Long: `Manage dockman configuration.

Configuration is stored in:
  - Linux: ~/.config/dockman/config.toml
  - macOS: ~/Library/Application Support/dockman/config.toml
  - Windows: %APPDATA%\dockman\config.toml

A dockman.toml in the current directory takes precedence over the
per-user file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := provider.Resolve(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return wrapExitError(err)
			}

			// The password is shown masked; everything else verbatim.
			masked := *s
			if masked.Password != "" {
				masked.Password = "********"
			}

			content, err := config.GenerateTOML(masked)
			if err != nil {
				return wrapExitError(err)
			}
			fmt.Print(content)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file search paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return wrapExitError(err)
			}
			fmt.Println(filepath.Join(dir, config.ConfigFileName))
			fmt.Println(config.LocalConfigFileName)
			return nil
		},
	})

	return cfgCmd
}
