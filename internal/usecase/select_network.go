package usecase

import (
	"context"
	"fmt"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
)

// SelectNetwork makes sure a network is selected before a chain operation,
// asking the user when deploy.toml declares several.
type SelectNetwork struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	selector NetworkSelector
}

// NewSelectNetwork creates a new SelectNetwork use case
func NewSelectNetwork(cfg *config.RuntimeConfig, resolver NetworkResolver, selector NetworkSelector) *SelectNetwork {
	return &SelectNetwork{
		config:   cfg,
		resolver: resolver,
		selector: selector,
	}
}

// Run returns the selected network, storing a prompted choice in the runtime config
func (uc *SelectNetwork) Run(ctx context.Context) (*config.Network, error) {
	if uc.config.Network != nil {
		return uc.config.Network, nil
	}

	names := uc.resolver.GetNetworks(ctx)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: deploy.toml declares no [networks]", domain.ErrNoNetwork)
	}

	name, err := uc.selector.SelectNetwork(ctx, names, "Select network")
	if err != nil {
		return nil, err
	}

	network, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, err
	}
	uc.config.Network = network
	return network, nil
}
