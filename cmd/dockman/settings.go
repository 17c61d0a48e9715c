// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"dockman/internal/config"

	"github.com/spf13/cobra"
)

// settingFlagKeys maps shared flag names to their settings keys. Commands
// register whichever subset of these flags they need; resolveSettings only
// collects the ones the user actually set, so unset flags fall through to
// the environment, the config file, and the built-in defaults per field.
var settingFlagKeys = map[string]string{
	"image":      "image_name",
	"tag":        "default_tag",
	"registry":   "registry_url",
	"dockerfile": "dockerfile",
	"platform":   "platform",
	"builder":    "builder",
	"cache-to":   "cache_to",
	"cache-from": "cache_from",
	"username":   "username",
	"password":   "password",
}

// resolveSettings resolves the settings for one command invocation, treating
// changed string flags as the highest-precedence override source.
func resolveSettings(cmd *cobra.Command) (*config.Settings, error) {
	overrides := map[string]string{}
	for flagName, key := range settingFlagKeys {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil || !flag.Changed {
			continue
		}
		overrides[key] = flag.Value.String()
	}

	return config.Resolve(cmd.Context(), config.LoadOptions{
		ConfigFilePath: cfgFile,
		Overrides:      overrides,
	})
}
