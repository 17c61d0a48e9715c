// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"dockman/internal/reference"

	"github.com/spf13/cobra"
)

// scanCmd runs a vulnerability scan against an image
var scanCmd = &cobra.Command{
	Use:   "scan [reference]",
	Short: "Scan an image for vulnerabilities",
	Long: `Scan an image for vulnerabilities with the engine's scan plugin.

Without an argument the configured <image>:<tag> is scanned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringP("image", "i", "", "image name")
	scanCmd.Flags().StringP("tag", "t", "", "image tag")
}

func runScan(cmd *cobra.Command, args []string) error {
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

	out, err := newEngine().Scan(cmd.Context(), ref)
	if err != nil {
		return wrapExitError(err)
	}

	fmt.Print(out)
	return nil
}
