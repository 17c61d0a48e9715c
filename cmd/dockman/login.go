// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"dockman/internal/engine"

	"github.com/spf13/cobra"
)

// loginCmd authenticates to the configured registry
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the registry",
	Long: `Log in to the configured registry.

The password is taken from the resolved settings (config file,
DOCKMAN_PASSWORD, or --password) and handed to the engine on stdin.
It never appears in the spawned command line.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().String("registry", "", "registry URL")
	loginCmd.Flags().StringP("username", "u", "", "registry username")
	loginCmd.Flags().String("password", "", "registry password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return wrapExitError(err)
	}

	opts := engine.LoginOptions{
		Registry: s.RegistryURL,
		Username: s.Username,
		Password: s.Password,
	}
	if err := newEngine().Login(cmd.Context(), opts, quiet); err != nil {
		return wrapExitError(err)
	}

	fmt.Printf("%s Logged in to %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(s.RegistryURL))
	return nil
}
