package usecase

import (
	"context"
	"net/url"

	"github.com/samber/lo"

	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// ShowConfigResult is the resolved configuration with secrets redacted
type ShowConfigResult struct {
	ConfigPath   string                `yaml:"config_path"`
	ArtifactsDir string                `yaml:"artifacts_dir"`
	Compiler     string                `yaml:"compiler,omitempty"`
	Network      *NetworkView          `yaml:"network,omitempty"`
	Token        models.TokenParams    `yaml:"token"`
	Sourcify     config.SourcifyConfig `yaml:"sourcify"`
	Etherscan    EtherscanView         `yaml:"etherscan"`
	Timeout      string                `yaml:"timeout"`
	Warnings     []string              `yaml:"-"`
}

// NetworkView is the selected network with signer keys replaced by addresses
type NetworkView struct {
	Name        string   `yaml:"name"`
	RPCURL      string   `yaml:"rpc_url"`
	ChainID     uint64   `yaml:"chain_id"`
	ExplorerURL string   `yaml:"explorer_url,omitempty"`
	Signers     []string `yaml:"signers,omitempty"`
	SignerError string   `yaml:"signer_error,omitempty"`
}

// EtherscanView hides the API key
type EtherscanView struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config  *config.RuntimeConfig
	signers SignerProvider
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, signers SignerProvider) *ShowConfig {
	return &ShowConfig{
		config:  cfg,
		signers: signers,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	cfg := uc.config

	result := &ShowConfigResult{
		ConfigPath:   cfg.ConfigPath,
		ArtifactsDir: cfg.ArtifactsDir,
		Token:        cfg.Token,
		Timeout:      "none",
		Warnings:     cfg.Warnings,
	}
	if cfg.Timeout > 0 {
		result.Timeout = cfg.Timeout.String()
	}

	if cfg.Project != nil {
		result.Compiler = cfg.Project.Compiler.Version
		result.Sourcify = cfg.Project.Sourcify
		result.Etherscan = EtherscanView{
			Enabled: cfg.Project.Etherscan.Enabled,
			URL:     cfg.Project.Etherscan.URL,
		}
		if cfg.Project.Etherscan.APIKey != "" {
			result.Etherscan.APIKey = redacted
		}
	}

	if cfg.Network != nil {
		view := &NetworkView{
			Name:        cfg.Network.Name,
			RPCURL:      RedactURL(cfg.Network.RPCURL),
			ChainID:     cfg.Network.ChainID,
			ExplorerURL: cfg.Network.ExplorerURL,
		}

		signers, err := uc.signers.Signers(ctx)
		if err != nil {
			view.SignerError = err.Error()
		} else {
			view.Signers = lo.Map(signers, func(s *models.Signer, _ int) string {
				return s.Address.Hex()
			})
		}
		result.Network = view
	}

	return result, nil
}

const redacted = "***"

// RedactURL keeps scheme and host of an RPC URL, hiding path, query and userinfo
// where API keys usually live.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return redacted
	}
	hidden := u.User != nil || (u.Path != "" && u.Path != "/") || u.RawQuery != ""
	out := u.Scheme + "://" + u.Host
	if hidden {
		out += "/" + redacted
	}
	return out
}
