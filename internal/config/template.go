// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// templateHeader is prepended to generated config files.
const templateHeader = `# dockman configuration
# Every value can be overridden per field with a DOCKMAN_<KEY> environment
# variable (e.g. DOCKMAN_IMAGE_NAME) or the matching CLI flag.

`

// fileSettings mirrors Settings with TOML tags for template generation.
type fileSettings struct {
	Dockerfile  string `toml:"dockerfile"`
	ImageName   string `toml:"image_name"`
	RegistryURL string `toml:"registry_url"`
	DefaultTag  string `toml:"default_tag"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	Platform    string `toml:"platform"`
	Builder     string `toml:"builder"`
	CacheTo     string `toml:"cache_to"`
	CacheFrom   string `toml:"cache_from"`
}

// WriteTemplate writes a config file populated with the built-in defaults.
// An existing file is only overwritten when force is set.
func WriteTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("file %q already exists (use --force to overwrite)", path)
	}

	content, err := GenerateTOML(DefaultSettings())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateTOML renders settings as a commented TOML document.
func GenerateTOML(s Settings) (string, error) {
	fs := fileSettings{
		Dockerfile:  s.Dockerfile,
		ImageName:   s.ImageName,
		RegistryURL: s.RegistryURL,
		DefaultTag:  s.DefaultTag,
		Username:    s.Username,
		Password:    s.Password,
		Platform:    s.Platform,
		Builder:     s.Builder,
		CacheTo:     s.CacheTo,
		CacheFrom:   s.CacheFrom,
	}

	body, err := toml.Marshal(fs)
	if err != nil {
		return "", fmt.Errorf("failed to render config template: %w", err)
	}
	return templateHeader + string(body), nil
}
