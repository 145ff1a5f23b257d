package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// SignerProvider resolves the signing accounts of the selected network
type SignerProvider interface {
	Signers(ctx context.Context) ([]*models.Signer, error)
}

// ProxyDeployRequest describes an implementation to deploy behind a proxy
type ProxyDeployRequest struct {
	// Contract is the artifact name of the implementation
	Contract string
	// Args are passed to the initializer in ABI order
	Args        []any
	Initializer string
	Kind        models.ProxyKind
}

// ProxyDeployer deploys an implementation plus proxy and calls the initializer
type ProxyDeployer interface {
	DeployProxy(ctx context.Context, signer *models.Signer, req ProxyDeployRequest) (DeploymentHandle, error)
}

// DeploymentHandle tracks a submitted proxy deployment
type DeploymentHandle interface {
	// WaitForDeployment blocks until the proxy is mined with code at its address
	WaitForDeployment(ctx context.Context) error
	// GetAddress returns the proxy address
	GetAddress(ctx context.Context) (common.Address, error)
	Info() models.ProxyDeployment
}

// ArtifactRepository provides compiled contract artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	SourceBundle(ctx context.Context, artifact *models.Artifact) (*models.SourceBundle, error)
}

// VerificationTarget is a deployed contract together with its sources
type VerificationTarget struct {
	Network  *config.Network
	Address  common.Address
	Artifact *models.Artifact
	Bundle   *models.SourceBundle
}

// ContractVerifier submits contracts to the configured verifiers.
// The result maps verifier name to its status.
type ContractVerifier interface {
	Verify(ctx context.Context, target *VerificationTarget) map[string]models.VerifierStatus
}

// ProxyInspector reads ERC-1967 storage slots of a deployed proxy
type ProxyInspector interface {
	InspectProxy(ctx context.Context, proxy common.Address) (*models.ProxyInfo, error)
}

// ChainChecker queries the chain ID reported by an RPC endpoint
type ChainChecker interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// NetworkSelector asks the user to pick one network
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
