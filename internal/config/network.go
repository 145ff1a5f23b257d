package config

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
)

// NetworkResolver resolves network names declared in deploy.toml
type NetworkResolver struct {
	project *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{project: project}
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Project)
}

// Names returns the configured network names in sorted order
func (r *NetworkResolver) Names() []string {
	if r.project == nil {
		return nil
	}
	names := lo.Keys(r.project.Networks)
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(networkName string) (*config.Network, error) {
	if r.project == nil {
		return nil, domain.NetworkNotFoundErr{Name: networkName}
	}

	name := networkName
	nc, exists := r.project.Networks[name]
	if !exists {
		// Case-insensitive fallback
		for candidate, candidateCfg := range r.project.Networks {
			if strings.EqualFold(candidate, networkName) {
				name, nc, exists = candidate, candidateCfg, true
				break
			}
		}
	}
	if !exists {
		return nil, domain.NetworkNotFoundErr{
			Name:        networkName,
			Suggestions: r.suggest(networkName),
		}
	}

	return &config.Network{
		Name:        name,
		RPCURL:      nc.URL,
		ChainID:     nc.ChainID,
		ExplorerURL: r.explorerURL(nc.ChainID),
		Accounts:    lo.Compact(nc.Accounts),
	}, nil
}

// GetNetworks implements usecase.NetworkResolver
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	return r.Names()
}

// ResolveNetwork implements usecase.NetworkResolver
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	return r.Resolve(name)
}

// suggest returns up to three fuzzy matches for a mistyped network name
func (r *NetworkResolver) suggest(input string) []string {
	names := r.Names()
	matches := fuzzy.Find(strings.ToLower(input), lo.Map(names, func(n string, _ int) string {
		return strings.ToLower(n)
	}))

	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, names[m.Index])
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

// explorerURL returns the block explorer for a chain
func (r *NetworkResolver) explorerURL(chainID uint64) string {
	// The Sourcify browser URL doubles as the explorer for custom chains
	if r.project.Sourcify.BrowserURL != "" {
		return strings.TrimRight(r.project.Sourcify.BrowserURL, "/")
	}
	if r.project.Etherscan.URL != "" {
		return strings.TrimRight(r.project.Etherscan.URL, "/")
	}

	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 56:
		return "https://bscscan.com"
	case 10143:
		return "https://testnet.monadexplorer.com"
	default:
		return ""
	}
}
