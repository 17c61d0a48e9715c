// SPDX-License-Identifier: MPL-2.0

package config

type (
	// Settings is the fully resolved configuration for one invocation.
	// Every field has a value after Resolve: precedence is CLI flag >
	// environment variable > config file > built-in default, evaluated
	// independently per field. The value is never mutated after resolution.
	Settings struct {
		// Dockerfile is the default Dockerfile path for builds.
		Dockerfile string `mapstructure:"dockerfile"`
		// ImageName is the unqualified image name.
		ImageName string `mapstructure:"image_name"`
		// RegistryURL is the registry prefix for push/pull/login. Empty
		// means local-only operation.
		RegistryURL string `mapstructure:"registry_url"`
		// DefaultTag substitutes for operations invoked without --tag.
		DefaultTag string `mapstructure:"default_tag"`
		// Username and Password authenticate registry operations.
		// Password is never logged or echoed by any component.
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		// Platform is the buildx target platform list, comma-separated.
		Platform string `mapstructure:"platform"`
		// Builder names the buildx builder to use.
		Builder string `mapstructure:"builder"`
		// CacheTo and CacheFrom configure external build cache endpoints.
		CacheTo   string `mapstructure:"cache_to"`
		CacheFrom string `mapstructure:"cache_from"`
	}
)

// DefaultSettings returns the built-in defaults, the lowest-precedence
// source. These guarantee the resolver is total: no field is ever unset.
func DefaultSettings() Settings {
	return Settings{
		Dockerfile:  "Dockerfile",
		ImageName:   "myapp",
		RegistryURL: "",
		DefaultTag:  "latest",
		Username:    "",
		Password:    "",
		Platform:    "linux/amd64",
		Builder:     "default",
		CacheTo:     "",
		CacheFrom:   "",
	}
}
