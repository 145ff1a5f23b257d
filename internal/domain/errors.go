package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when a decimal token amount can't be scaled
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNoNetwork is returned when an operation needs a network and none was selected
	ErrNoNetwork = errors.New("no network selected")

	// ErrNoSigner is returned when the selected network has no usable account
	ErrNoSigner = errors.New("no signing account configured")

	// ErrChainIDMismatch is returned when the RPC reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrArtifactNotFound is returned when a compiled contract artifact can't be found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrInitializerNotFound is returned when the implementation ABI lacks the initializer
	ErrInitializerNotFound = errors.New("initializer not found")

	// ErrCompilerMismatch is returned when an artifact was built with another solc version
	ErrCompilerMismatch = errors.New("compiler version mismatch")

	// ErrDeploymentReverted is returned when a deployment transaction reverts on-chain
	ErrDeploymentReverted = errors.New("deployment reverted")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")
)

// NetworkNotFoundErr is returned when a network name isn't declared in deploy.toml.
type NetworkNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e NetworkNotFoundErr) Error() string {
	msg := fmt.Sprintf("network '%s' not found in deploy.toml [networks]", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", quoteJoin(e.Suggestions))
	}
	return msg
}

func (e NetworkNotFoundErr) Unwrap() error {
	return ErrNotFound
}

// AmbiguousArtifactErr is returned when a contract name matches several artifacts.
type AmbiguousArtifactErr struct {
	Name  string
	Paths []string
}

func (e AmbiguousArtifactErr) Error() string {
	paths := make([]string, len(e.Paths))
	copy(paths, e.Paths)
	sort.Strings(paths)

	var suggestions []string
	for _, p := range paths {
		suggestions = append(suggestions, "  - "+p)
	}

	return fmt.Sprintf("multiple artifacts found for %s - use sourceName:ContractName to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, " or ")
}
