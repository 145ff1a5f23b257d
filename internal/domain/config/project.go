package config

// ProjectConfig represents the full deploy.toml configuration
type ProjectConfig struct {
	DefaultNetwork string                   `toml:"default_network,omitempty"`
	Compiler       CompilerConfig           `toml:"compiler"`
	Networks       map[string]NetworkConfig `toml:"networks"`
	Sourcify       SourcifyConfig           `toml:"sourcify"`
	Etherscan      EtherscanConfig          `toml:"etherscan"`
	Token          TokenConfig              `toml:"token"`
	Paths          PathsConfig              `toml:"paths"`
}

// CompilerConfig pins the solc version the artifacts must be built with
type CompilerConfig struct {
	Version string `toml:"version"`
}

// NetworkConfig is one entry of [networks]
type NetworkConfig struct {
	URL      string   `toml:"url"`
	Accounts []string `toml:"accounts"` //nolint:gosec // usually ${VAR} references
	ChainID  uint64   `toml:"chain_id"`
}

// SourcifyConfig configures Sourcify verification
type SourcifyConfig struct {
	Enabled    bool   `toml:"enabled" yaml:"enabled"`
	APIURL     string `toml:"api_url,omitempty" yaml:"api_url,omitempty"`
	BrowserURL string `toml:"browser_url,omitempty" yaml:"browser_url,omitempty"`
}

// EtherscanConfig configures Etherscan verification
type EtherscanConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key,omitempty"`
	URL     string `toml:"url,omitempty"`
}

// TokenConfig overrides the default token parameters. Unset fields keep defaults.
type TokenConfig struct {
	Contract      string `toml:"contract,omitempty"`
	Name          string `toml:"name,omitempty"`
	Symbol        string `toml:"symbol,omitempty"`
	InitialSupply string `toml:"initial_supply,omitempty"`
	Cap           string `toml:"cap,omitempty"`
	Decimals      *uint8 `toml:"decimals,omitempty"`
	Initializer   string `toml:"initializer,omitempty"`
	Kind          string `toml:"kind,omitempty"`
}

// PathsConfig locates build outputs relative to the project root
type PathsConfig struct {
	Artifacts string `toml:"artifacts,omitempty"`
}
