package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
)

// VerifyParams contains parameters for verifying a deployment
type VerifyParams struct {
	// Address of the proxy (or a plain contract)
	Address string
	// Contract overrides the implementation artifact name
	Contract string
}

// VerifyTargetResult is the outcome for one contract
type VerifyTargetResult struct {
	Label        string
	ContractName string
	Address      common.Address
	Statuses     map[string]models.VerifierStatus
	Error        error
}

// Failed reports whether the target could not be verified by any verifier
func (t *VerifyTargetResult) Failed() bool {
	if t.Error != nil {
		return true
	}
	for _, status := range t.Statuses {
		if status.Status == models.VerifierStatusFailed {
			return true
		}
	}
	return false
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Network *config.Network
	Proxy   *models.ProxyInfo
	Targets []*VerifyTargetResult
}

// Failed reports whether any target failed
func (r *VerifyResult) Failed() bool {
	for _, target := range r.Targets {
		if target.Failed() {
			return true
		}
	}
	return false
}

// VerifyDeployment verifies a deployed proxy and its implementation
type VerifyDeployment struct {
	config    *config.RuntimeConfig
	inspector ProxyInspector
	artifacts ArtifactRepository
	verifier  ContractVerifier
	progress  ProgressSink
	log       *slog.Logger
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	inspector ProxyInspector,
	artifacts ArtifactRepository,
	verifier ContractVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:    cfg,
		inspector: inspector,
		artifacts: artifacts,
		verifier:  verifier,
		progress:  progress,
		log:       log.With("component", "VerifyDeployment"),
	}
}

// Run verifies the contracts behind an address
func (v *VerifyDeployment) Run(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	if v.config.Network == nil {
		return nil, domain.ErrNoNetwork
	}
	if !common.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, params.Address)
	}
	address := common.HexToAddress(params.Address)

	contract := params.Contract
	if contract == "" {
		contract = v.config.Token.Contract
	}

	v.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "inspecting",
		Message: fmt.Sprintf("Reading proxy slots of %s...", address.Hex()),
		Spinner: true,
	})

	info, err := v.inspector.InspectProxy(ctx, address)
	if err != nil {
		v.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, fmt.Errorf("failed to inspect %s: %w", address.Hex(), err)
	}

	result := &VerifyResult{
		Network: v.config.Network,
		Proxy:   info,
	}

	if info.IsProxy() {
		v.log.Debug("proxy detected", "implementation", info.Implementation.Hex(), "kind", info.Kind())
		result.Targets = []*VerifyTargetResult{
			{Label: "Implementation", ContractName: contract, Address: info.Implementation},
			{Label: "Proxy", ContractName: models.ProxyContractName(info.Kind()), Address: address},
		}
	} else {
		result.Targets = []*VerifyTargetResult{
			{Label: "Contract", ContractName: contract, Address: address},
		}
	}

	for _, target := range result.Targets {
		v.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "verifying",
			Message: fmt.Sprintf("Verifying %s at %s...", target.ContractName, target.Address.Hex()),
			Spinner: true,
		})
		target.Statuses, target.Error = v.verifyTarget(ctx, target)
	}

	v.progress.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	return result, nil
}

func (v *VerifyDeployment) verifyTarget(ctx context.Context, target *VerifyTargetResult) (map[string]models.VerifierStatus, error) {
	artifact, err := v.artifacts.GetArtifact(ctx, target.ContractName)
	if err != nil {
		return nil, err
	}

	bundle, err := v.artifacts.SourceBundle(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources for %s: %w", target.ContractName, err)
	}

	return v.verifier.Verify(ctx, &VerificationTarget{
		Network:  v.config.Network,
		Address:  target.Address,
		Artifact: artifact,
		Bundle:   bundle,
	}), nil
}
