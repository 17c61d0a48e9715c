// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"dockman/internal/reference"

	"github.com/spf13/cobra"
)

// inspectCmd dumps image metadata as indented JSON
var inspectCmd = &cobra.Command{
	Use:   "inspect [reference]",
	Short: "Show image metadata as JSON",
	Long: `Show image metadata as indented JSON.

Without an argument the configured <image>:<tag> is inspected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringP("image", "i", "", "image name")
	inspectCmd.Flags().StringP("tag", "t", "", "image tag")
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	out, err := newEngine().Inspect(cmd.Context(), ref)
	if err != nil {
		return wrapExitError(err)
	}

	fmt.Println(indentJSON(out))
	return nil
}

// indentJSON pretty-prints a JSON document, falling back to the raw text
// when it does not parse.
func indentJSON(doc string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(doc)), "", "  "); err != nil {
		return strings.TrimSpace(doc)
	}
	return buf.String()
}
