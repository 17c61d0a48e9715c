// SPDX-License-Identifier: MPL-2.0

// Package config resolves dockman settings from four sources — built-in
// defaults, a TOML config file, DOCKMAN_* environment variables, and CLI
// flag overrides — into one immutable Settings value per invocation.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"dockman/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "dockman"
	// ConfigFileName is the config file name in the config directory.
	ConfigFileName = "config.toml"
	// LocalConfigFileName is the config file name looked up in the
	// current directory, and the file written by `dockman init`.
	LocalConfigFileName = "dockman.toml"
	// EnvPrefix is the prefix for environment variable overrides
	// (e.g., DOCKMAN_IMAGE_NAME, DOCKMAN_REGISTRY_URL).
	EnvPrefix = "DOCKMAN"
)

// settingKeys are the configuration keys, each independently overridable
// from every source.
var settingKeys = []string{
	"dockerfile",
	"image_name",
	"registry_url",
	"default_tag",
	"username",
	"password",
	"platform",
	"builder",
	"cache_to",
	"cache_from",
}

// LoadOptions defines explicit resolution inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
	// Overrides are CLI flag values, the highest-precedence source. Only
	// flags the user actually set belong here, so unset flags fall through
	// to the lower-precedence sources per field.
	Overrides map[string]string
}

// Resolve merges the four configuration sources into one Settings value.
// It is total over missing sources: an absent config file or environment
// variable falls through to the next source, and the built-in defaults
// guarantee every field ends up set. Only a present-but-unreadable config
// file is an error.
func Resolve(ctx context.Context, opts LoadOptions) (*Settings, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("resolve settings canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	v.SetConfigType("toml")

	defaults := DefaultSettings()
	v.SetDefault("dockerfile", defaults.Dockerfile)
	v.SetDefault("image_name", defaults.ImageName)
	v.SetDefault("registry_url", defaults.RegistryURL)
	v.SetDefault("default_tag", defaults.DefaultTag)
	v.SetDefault("username", defaults.Username)
	v.SetDefault("password", defaults.Password)
	v.SetDefault("platform", defaults.Platform)
	v.SetDefault("builder", defaults.Builder)
	v.SetDefault("cache_to", defaults.CacheTo)
	v.SetDefault("cache_from", defaults.CacheFrom)

	if err := loadConfigFile(v, opts); err != nil {
		return nil, err
	}

	// Environment overrides, bound per key so that Unmarshal sees them.
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range settingKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind environment for %q: %w", key, err)
		}
	}

	// CLI flag overrides win over everything.
	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// loadConfigFile merges the config file into viper. With an explicit path
// the file must exist; otherwise the config directory and the current
// directory are searched, and finding nothing is not an error.
func loadConfigFile(v *viper.Viper, opts LoadOptions) error {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the path passed via --config").
				WithSuggestion("Run 'dockman init' to create a config file").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return readConfigFile(v, opts.ConfigFilePath)
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return err
	}

	for _, path := range []string{filepath.Join(cfgDir, ConfigFileName), LocalConfigFileName} {
		if fileExists(path) {
			return readConfigFile(v, path)
		}
	}

	// No config file found; defaults plus env apply.
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Check that the file contains valid TOML").
			WithSuggestion("Run 'dockman init --force' to regenerate a valid config file").
			Wrap(err).
			BuildError()
	}
	return nil
}

// ConfigDir returns the dockman configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
