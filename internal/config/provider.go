// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// Provider resolves settings from explicit options. The abstraction lets
// the CLI layer and tests substitute custom sources.
type Provider interface {
	Resolve(ctx context.Context, opts LoadOptions) (*Settings, error)
}

type fileProvider struct{}

// NewProvider creates the production settings provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Resolve merges defaults, config file, environment, and flag overrides.
func (p *fileProvider) Resolve(ctx context.Context, opts LoadOptions) (*Settings, error) {
	return Resolve(ctx, opts)
}
