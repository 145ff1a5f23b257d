package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "deploy.toml"

// loadEnvFiles loads .env files so ${VAR} references in deploy.toml resolve.
// Variables already set in the process environment win.
func loadEnvFiles(projectRoot string) []string {
	var warnings []string

	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				warnings = append(warnings, fmt.Sprintf("failed to load %s: %v", envFile, err))
			}
		}
	}

	return warnings
}

// loadProjectConfig loads and parses deploy.toml, expanding ${VAR} references.
// Returned warnings point at unknown keys and secrets written inline.
func loadProjectConfig(path string) (*config.ProjectConfig, []string, error) {
	var raw config.ProjectConfig

	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown key '%s' in %s", key.String(), filepath.Base(path)))
	}

	cfg := &raw
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}

	names := lo.Keys(cfg.Networks)
	sort.Strings(names)

	for _, name := range names {
		network := cfg.Networks[name]
		warnings = append(warnings, inlineSecretWarnings(name, network)...)

		network.URL = os.ExpandEnv(network.URL)
		network.Accounts = lo.Map(network.Accounts, func(account string, _ int) string {
			return strings.TrimSpace(os.ExpandEnv(account))
		})
		cfg.Networks[name] = network
	}

	cfg.DefaultNetwork = os.ExpandEnv(cfg.DefaultNetwork)
	cfg.Sourcify.APIURL = os.ExpandEnv(cfg.Sourcify.APIURL)
	cfg.Sourcify.BrowserURL = os.ExpandEnv(cfg.Sourcify.BrowserURL)
	cfg.Etherscan.APIKey = os.ExpandEnv(cfg.Etherscan.APIKey)
	cfg.Etherscan.URL = os.ExpandEnv(cfg.Etherscan.URL)

	return cfg, warnings, nil
}

// resolveTokenParams overlays [token] onto the default token parameters
func resolveTokenParams(tc config.TokenConfig) (models.TokenParams, error) {
	params := models.DefaultTokenParams()

	if tc.Contract != "" {
		params.Contract = tc.Contract
	}
	if tc.Name != "" {
		params.Name = tc.Name
	}
	if tc.Symbol != "" {
		params.Symbol = tc.Symbol
	}
	if tc.InitialSupply != "" {
		params.InitialSupply = tc.InitialSupply
	}
	if tc.Cap != "" {
		params.Cap = tc.Cap
	}
	if tc.Decimals != nil {
		params.Decimals = *tc.Decimals
	}
	if tc.Initializer != "" {
		params.Initializer = tc.Initializer
	}

	kind, err := models.ParseProxyKind(tc.Kind)
	if err != nil {
		return models.TokenParams{}, fmt.Errorf("invalid [token] kind: %w", err)
	}
	params.Kind = kind

	return params, nil
}

// resolveArtifactsDir picks the configured artifacts directory, falling back
// from Hardhat's "artifacts" to Foundry's "out" when only the latter exists.
func resolveArtifactsDir(projectRoot string, paths config.PathsConfig) string {
	if paths.Artifacts != "" {
		if filepath.IsAbs(paths.Artifacts) {
			return paths.Artifacts
		}
		return filepath.Join(projectRoot, paths.Artifacts)
	}

	hardhat := filepath.Join(projectRoot, "artifacts")
	if _, err := os.Stat(hardhat); err == nil {
		return hardhat
	}
	foundry := filepath.Join(projectRoot, "out")
	if _, err := os.Stat(foundry); err == nil {
		return foundry
	}
	return hardhat
}
