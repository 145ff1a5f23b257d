package verification

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

const (
	VerifierSourcify  = "sourcify"
	VerifierEtherscan = "etherscan"
)

// verifier submits one contract to one service
type verifier interface {
	Verify(ctx context.Context, target *usecase.VerificationTarget) models.VerifierStatus
}

// Manager runs every verifier enabled in deploy.toml
type Manager struct {
	sourcifyEnabled  bool
	etherscanEnabled bool
	sourcify         verifier
	etherscan        verifier
	log              *slog.Logger
}

// NewManager creates a verification manager from the project configuration
func NewManager(cfg *config.RuntimeConfig, log *slog.Logger) *Manager {
	client := &http.Client{Timeout: 60 * time.Second}

	m := &Manager{log: log.With("component", "verification")}
	if cfg.Project == nil {
		return m
	}

	m.sourcifyEnabled = cfg.Project.Sourcify.Enabled
	m.etherscanEnabled = cfg.Project.Etherscan.Enabled
	m.sourcify = NewSourcifyClient(client, cfg.Project.Sourcify.APIURL, cfg.Project.Sourcify.BrowserURL)
	m.etherscan = NewEtherscanClient(client, cfg.Project.Etherscan.URL, cfg.Project.Etherscan.APIKey)
	return m
}

// Verify submits the target to each enabled verifier
func (m *Manager) Verify(ctx context.Context, target *usecase.VerificationTarget) map[string]models.VerifierStatus {
	statuses := make(map[string]models.VerifierStatus, 2)

	statuses[VerifierSourcify] = m.run(ctx, VerifierSourcify, m.sourcifyEnabled, m.sourcify, target)
	statuses[VerifierEtherscan] = m.run(ctx, VerifierEtherscan, m.etherscanEnabled, m.etherscan, target)

	return statuses
}

func (m *Manager) run(ctx context.Context, name string, enabled bool, v verifier, target *usecase.VerificationTarget) models.VerifierStatus {
	if !enabled || v == nil {
		return models.VerifierStatus{Status: models.VerifierStatusSkipped, Reason: "disabled in deploy.toml"}
	}

	m.log.Debug("submitting verification", "verifier", name, "address", target.Address.Hex())
	status := v.Verify(ctx, target)
	m.log.Debug("verification finished", "verifier", name, "status", status.Status, "reason", status.Reason)
	return status
}

var _ usecase.ContractVerifier = (*Manager)(nil)
