// SPDX-License-Identifier: MPL-2.0

// Package reference assembles and validates image references of the form
// [registry/]name:tag. Validation is delegated to go-containerregistry so
// that anything accepted here is also accepted by the registry ecosystem.
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
)

// DefaultTag substitutes for an empty tag.
const DefaultTag = "latest"

// ErrInvalidReference is the sentinel error wrapped by reference validation
// failures.
var ErrInvalidReference = errors.New("invalid image reference")

// Local builds a "name:tag" reference without a registry segment, for
// operations against the local image store. An empty tag becomes DefaultTag.
func Local(image, tag string) (string, error) {
	return assemble("", image, tag)
}

// Qualified builds a "registry/name:tag" reference. An empty registry yields
// the local form; an empty tag becomes DefaultTag.
func Qualified(registry, image, tag string) (string, error) {
	return assemble(registry, image, tag)
}

func assemble(registry, image, tag string) (string, error) {
	if strings.TrimSpace(image) == "" {
		return "", fmt.Errorf("%w: image name must be non-empty", ErrInvalidReference)
	}
	if tag == "" {
		tag = DefaultTag
	}

	ref := image + ":" + tag
	if registry != "" {
		ref = strings.TrimSuffix(registry, "/") + "/" + ref
	}

	// NewTag rejects whitespace, bad tag characters, and malformed registry
	// hosts. WithDefaultRegistry("") keeps the reference exactly as built
	// instead of silently prefixing index.docker.io.
	if _, err := name.NewTag(ref, name.WithDefaultRegistry("")); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidReference, ref, err)
	}

	return ref, nil
}
