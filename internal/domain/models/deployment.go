package models

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ProxyKind selects which proxy contract fronts the implementation
type ProxyKind string

const (
	ProxyKindAuto        ProxyKind = "auto"
	ProxyKindUUPS        ProxyKind = "uups"
	ProxyKindTransparent ProxyKind = "transparent"
)

// ParseProxyKind normalizes a configured proxy kind, defaulting to auto
func ParseProxyKind(s string) (ProxyKind, error) {
	switch ProxyKind(s) {
	case "", ProxyKindAuto:
		return ProxyKindAuto, nil
	case ProxyKindUUPS, ProxyKindTransparent:
		return ProxyKind(s), nil
	default:
		return "", fmt.Errorf("unsupported proxy kind %q (expected auto, uups or transparent)", s)
	}
}

// TokenParams holds the initializer inputs for the token deployment.
// Supply values are decimal literals; they are scaled by Decimals before use.
type TokenParams struct {
	Contract      string    `json:"contract" yaml:"contract"`
	Name          string    `json:"name" yaml:"name"`
	Symbol        string    `json:"symbol" yaml:"symbol"`
	InitialSupply string    `json:"initialSupply" yaml:"initial_supply"`
	Cap           string    `json:"cap" yaml:"cap"`
	Decimals      uint8     `json:"decimals" yaml:"decimals"`
	Initializer   string    `json:"initializer" yaml:"initializer"`
	Kind          ProxyKind `json:"kind" yaml:"kind"`
}

// DefaultTokenParams returns the GMonad token parameters
func DefaultTokenParams() TokenParams {
	return TokenParams{
		Contract:      "Token",
		Name:          "GMonad",
		Symbol:        "GMD",
		InitialSupply: "1000000",
		Cap:           "2000000",
		Decimals:      18,
		Initializer:   "initialize",
		Kind:          ProxyKindAuto,
	}
}

// DeploymentPlan is the fully computed input of a proxy deployment
type DeploymentPlan struct {
	Token         TokenParams
	InitialSupply *big.Int
	Cap           *big.Int
}

// InitializerArgs returns the initializer arguments in ABI order
func (p *DeploymentPlan) InitializerArgs() []any {
	return []any{p.Token.Name, p.Token.Symbol, p.InitialSupply, p.Cap}
}

// ProxyDeployment describes the contracts created by a proxy deployment
type ProxyDeployment struct {
	Kind             ProxyKind      `json:"kind"`
	Proxy            common.Address `json:"proxy"`
	Implementation   common.Address `json:"implementation"`
	ProxyTx          common.Hash    `json:"proxyTx"`
	ImplementationTx common.Hash    `json:"implementationTx"`
}

// VerifierStatus represents the status of a verifier
type VerifierStatus struct {
	Status string `json:"status"` // verified/partial/skipped/failed
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

const (
	VerifierStatusVerified = "verified"
	VerifierStatusPartial  = "partial"
	VerifierStatusSkipped  = "skipped"
	VerifierStatusFailed   = "failed"
)

// ProxyInfo holds the ERC-1967 slots read from a deployed proxy.
// Both addresses are zero when the target is not a proxy.
type ProxyInfo struct {
	Proxy          common.Address `json:"proxy"`
	Implementation common.Address `json:"implementation"`
	Admin          common.Address `json:"admin"`
}

// IsProxy reports whether an implementation slot was set
func (p *ProxyInfo) IsProxy() bool {
	return p.Implementation != (common.Address{})
}

// Kind infers the proxy flavour: transparent proxies carry an admin
func (p *ProxyInfo) Kind() ProxyKind {
	if p.Admin != (common.Address{}) {
		return ProxyKindTransparent
	}
	return ProxyKindUUPS
}

// ProxyContractName returns the OpenZeppelin artifact name for a proxy kind
func ProxyContractName(kind ProxyKind) string {
	if kind == ProxyKindTransparent {
		return "TransparentUpgradeableProxy"
	}
	return "ERC1967Proxy"
}
