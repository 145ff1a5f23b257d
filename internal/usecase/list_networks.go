package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
)

// networkProbeTimeout bounds each live chain ID lookup
const networkProbeTimeout = 10 * time.Second

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Offline skips querying the RPC endpoints
	Offline bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name       string
	ChainID    uint64
	RPCChainID uint64
	Selected   bool
	Error      error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	checker  ChainChecker
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver, checker ChainChecker) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
		checker:  checker,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name:     name,
			Selected: uc.config.Network != nil && uc.config.Network.Name == name,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.ChainID = info.ChainID

		if !params.Offline {
			status.RPCChainID, status.Error = uc.probe(ctx, info)
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

// probe asks the RPC endpoint for its chain ID and compares it with the configured one
func (uc *ListNetworks) probe(ctx context.Context, network *config.Network) (uint64, error) {
	if network.RPCURL == "" {
		return 0, errors.New("no RPC URL configured")
	}

	ctx, cancel := context.WithTimeout(ctx, networkProbeTimeout)
	defer cancel()

	chainID, err := uc.checker.ChainID(ctx, network.RPCURL)
	if err != nil {
		return 0, err
	}
	if network.ChainID != 0 && chainID != network.ChainID {
		return chainID, fmt.Errorf("%w: configured %d, RPC reports %d", domain.ErrChainIDMismatch, network.ChainID, chainID)
	}
	return chainID, nil
}
