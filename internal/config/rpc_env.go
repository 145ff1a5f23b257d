package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gmonad/gmd-deploy/internal/domain/config"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network setting.
// Examples: (monadTestnet, RPC_URL) -> MONAD_TESTNET_RPC_URL
func GenerateEnvVarName(networkName, suffix string) string {
	var b strings.Builder
	for i, r := range networkName {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := networkName[i-1]
			if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	name := strings.ToUpper(b.String())
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_" + suffix
}

// inlineSecretWarnings flags hardcoded RPC URLs and private keys in a raw
// (unexpanded) network entry.
func inlineSecretWarnings(name string, network config.NetworkConfig) []string {
	var warnings []string

	if network.URL != "" && !strings.Contains(network.URL, "${") && !isLocalURL(network.URL) {
		warnings = append(warnings, fmt.Sprintf(
			"network '%s' has a hardcoded RPC URL; consider url = \"${%s}\" with the value in .env",
			name, GenerateEnvVarName(name, "RPC_URL")))
	}

	for i, account := range network.Accounts {
		if _, ok := DetectEnvVar(account); ok {
			continue
		}
		warnings = append(warnings, fmt.Sprintf(
			"network '%s' account #%d is written inline; consider accounts = [\"${PRIVATE_KEY}\"] with the key in .env",
			name, i))
	}

	return warnings
}

func isLocalURL(url string) bool {
	return strings.Contains(url, "localhost") || strings.Contains(url, "127.0.0.1")
}
