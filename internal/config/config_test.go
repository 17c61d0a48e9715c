// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeConfig writes a config file into a fresh temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), LocalConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestResolve_DefaultsAreTotal(t *testing.T) {
	t.Parallel()

	// Empty config dir, no file, no env, no flags: every field must still
	// have a value.
	s, err := Resolve(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := DefaultSettings()
	if diff := cmp.Diff(want, *s); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
	if s.Dockerfile == "" || s.ImageName == "" || s.DefaultTag == "" || s.Platform == "" || s.Builder == "" {
		t.Error("resolver must never leave a defaulted field empty")
	}
}

func TestResolve_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "image_name = \"webapp\"\ndefault_tag = \"stable\"\n")

	s, err := Resolve(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if s.ImageName != "webapp" {
		t.Errorf("ImageName = %q, want %q", s.ImageName, "webapp")
	}
	if s.DefaultTag != "stable" {
		t.Errorf("DefaultTag = %q, want %q", s.DefaultTag, "stable")
	}
	// Fields absent from the file keep their defaults.
	if s.Dockerfile != "Dockerfile" {
		t.Errorf("Dockerfile = %q, want default %q", s.Dockerfile, "Dockerfile")
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "image_name = \"fromfile\"\nregistry_url = \"registry.file.example\"\n")

	t.Setenv("DOCKMAN_IMAGE_NAME", "fromenv")

	s, err := Resolve(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if s.ImageName != "fromenv" {
		t.Errorf("ImageName = %q, want env value %q", s.ImageName, "fromenv")
	}
	// Precedence is per field: the env override of image_name must not
	// disturb the file's registry_url.
	if s.RegistryURL != "registry.file.example" {
		t.Errorf("RegistryURL = %q, want file value %q", s.RegistryURL, "registry.file.example")
	}
}

func TestResolve_FlagOverridesEnv(t *testing.T) {
	t.Setenv("DOCKMAN_DEFAULT_TAG", "fromenv")
	t.Setenv("DOCKMAN_USERNAME", "envuser")

	s, err := Resolve(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
		Overrides:     map[string]string{"default_tag": "fromflag"},
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if s.DefaultTag != "fromflag" {
		t.Errorf("DefaultTag = %q, want flag value %q", s.DefaultTag, "fromflag")
	}
	if s.Username != "envuser" {
		t.Errorf("Username = %q, want env value %q", s.Username, "envuser")
	}
}

func TestResolve_ExplicitMissingFileIsError(t *testing.T) {
	t.Parallel()

	_, err := Resolve(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml"),
	})
	if err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestResolve_MalformedFileIsError(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "image_name = [unclosed\n")

	if _, err := Resolve(context.Background(), LoadOptions{ConfigFilePath: path}); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	opts := LoadOptions{
		ConfigDirPath: t.TempDir(),
		Overrides:     map[string]string{"image_name": "app", "default_tag": "v3"},
	}

	first, err := Resolve(context.Background(), opts)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for range 5 {
		again, err := Resolve(context.Background(), opts)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if diff := cmp.Diff(*first, *again); diff != "" {
			t.Fatalf("Resolve is not deterministic (-first +again):\n%s", diff)
		}
	}
}

func TestWriteTemplate_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), LocalConfigFileName)
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}

	// A second write without force must refuse to clobber.
	if err := WriteTemplate(path, false); err == nil {
		t.Error("expected error when writing over an existing file without force")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Errorf("WriteTemplate with force: %v", err)
	}

	// The generated file resolves back to the defaults.
	s, err := Resolve(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Resolve generated template: %v", err)
	}
	if diff := cmp.Diff(DefaultSettings(), *s); diff != "" {
		t.Errorf("template round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTOML_ContainsAllKeys(t *testing.T) {
	t.Parallel()

	out, err := GenerateTOML(DefaultSettings())
	if err != nil {
		t.Fatalf("GenerateTOML: %v", err)
	}
	for _, key := range settingKeys {
		if !strings.Contains(out, key) {
			t.Errorf("generated template is missing key %q", key)
		}
	}
}
