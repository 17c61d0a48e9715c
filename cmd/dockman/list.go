// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// listCmd prints the local image table
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List local images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newEngine().ListImages(cmd.Context())
			if err != nil {
				return wrapExitError(err)
			}
			fmt.Print(out)
			return nil
		},
	}

	// buildersCmd prints the buildx builder table
	buildersCmd = &cobra.Command{
		Use:   "builders",
		Short: "List buildx builders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newEngine().ListBuilders(cmd.Context())
			if err != nil {
				return wrapExitError(err)
			}
			fmt.Print(out)
			return nil
		},
	}
)
