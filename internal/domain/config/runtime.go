package config

import (
	"time"

	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ConfigPath   string
	ArtifactsDir string

	// Network is nil until one is selected
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration // 0 waits for confirmation indefinitely

	// Resolved configurations
	Project  *ProjectConfig
	Token    models.TokenParams
	Warnings []string
}

// Network represents a resolved network entry of deploy.toml
type Network struct {
	Name        string   `json:"name" yaml:"name"`
	RPCURL      string   `json:"rpcUrl" yaml:"rpc_url"`
	ChainID     uint64   `json:"chainId" yaml:"chain_id"`
	ExplorerURL string   `json:"explorerUrl,omitempty" yaml:"explorer_url,omitempty"`
	Accounts    []string `json:"-" yaml:"-"`
}
