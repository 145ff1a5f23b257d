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

// DeployTokenResult contains the result of a token deployment
type DeployTokenResult struct {
	Network    *config.Network
	Deployer   common.Address
	Plan       *models.DeploymentPlan
	Address    common.Address
	Deployment models.ProxyDeployment
}

// DeployToken deploys the token behind an upgradeable proxy and initializes it
type DeployToken struct {
	config   *config.RuntimeConfig
	signers  SignerProvider
	deployer ProxyDeployer
	progress ProgressSink
	log      *slog.Logger
}

// NewDeployToken creates a new DeployToken use case
func NewDeployToken(
	cfg *config.RuntimeConfig,
	signers SignerProvider,
	deployer ProxyDeployer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployToken {
	return &DeployToken{
		config:   cfg,
		signers:  signers,
		deployer: deployer,
		progress: progress,
		log:      log.With("component", "DeployToken"),
	}
}

// Prepare scales the configured supply literals into token units.
// It performs no I/O.
func (uc *DeployToken) Prepare() (*models.DeploymentPlan, error) {
	token := uc.config.Token

	initialSupply, err := domain.ParseUnits(token.InitialSupply, token.Decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid initial supply %q: %w", token.InitialSupply, err)
	}
	supplyCap, err := domain.ParseUnits(token.Cap, token.Decimals)
	if err != nil {
		return nil, fmt.Errorf("invalid cap %q: %w", token.Cap, err)
	}

	return &models.DeploymentPlan{
		Token:         token,
		InitialSupply: initialSupply,
		Cap:           supplyCap,
	}, nil
}

// Run deploys the planned token. Each call creates a new proxy and implementation.
func (uc *DeployToken) Run(ctx context.Context, plan *models.DeploymentPlan) (*DeployTokenResult, error) {
	if uc.config.Network == nil {
		return nil, domain.ErrNoNetwork
	}

	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	signers, err := uc.signers.Signers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve signer: %w", err)
	}
	if len(signers) == 0 {
		return nil, fmt.Errorf("%w for network %s", domain.ErrNoSigner, uc.config.Network.Name)
	}
	signer := signers[0]
	uc.log.Debug("resolved signer", "address", signer.Address.Hex(), "network", uc.config.Network.Name)

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s implementation and proxy...", plan.Token.Contract),
		Spinner: true,
	})

	handle, err := uc.deployer.DeployProxy(ctx, signer, ProxyDeployRequest{
		Contract:    plan.Token.Contract,
		Args:        plan.InitializerArgs(),
		Initializer: plan.Token.Initializer,
		Kind:        plan.Token.Kind,
	})
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, fmt.Errorf("failed to deploy %s: %w", plan.Token.Contract, err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "confirming",
		Message: "Waiting for confirmation...",
		Spinner: true,
	})

	if err := handle.WaitForDeployment(ctx); err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, fmt.Errorf("failed waiting for deployment: %w", err)
	}

	address, err := handle.GetAddress(ctx)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, fmt.Errorf("failed to read deployed address: %w", err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	return &DeployTokenResult{
		Network:    uc.config.Network,
		Deployer:   signer.Address,
		Plan:       plan,
		Address:    address,
		Deployment: handle.Info(),
	}, nil
}
