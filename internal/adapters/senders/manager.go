package senders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gmonad/gmd-deploy/internal/domain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/domain/models"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// Manager turns the selected network's accounts into signers
type Manager struct {
	config *config.RuntimeConfig
	log    *slog.Logger
}

// NewManager creates a new sender manager
func NewManager(cfg *config.RuntimeConfig, log *slog.Logger) *Manager {
	return &Manager{
		config: cfg,
		log:    log.With("component", "senders"),
	}
}

// Signers parses every configured private key of the selected network.
// Empty entries (unset ${VAR} references) are skipped.
func (m *Manager) Signers(ctx context.Context) ([]*models.Signer, error) {
	if m.config.Network == nil {
		return nil, domain.ErrNoNetwork
	}

	var signers []*models.Signer
	for i, account := range m.config.Network.Accounts {
		account = strings.TrimSpace(account)
		if account == "" {
			continue
		}

		signer, err := parseSigner(account)
		if err != nil {
			return nil, fmt.Errorf("network %s account #%d: %w", m.config.Network.Name, i, err)
		}
		m.log.Debug("loaded signer", "index", i, "address", signer.Address.Hex())
		signers = append(signers, signer)
	}

	return signers, nil
}

func parseSigner(key string) (*models.Signer, error) {
	key = strings.TrimPrefix(strings.TrimPrefix(key, "0x"), "0X")
	if !isValidPrivateKey(key) {
		return nil, fmt.Errorf("invalid private key: expected 64 hex characters")
	}

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &models.Signer{
		Address: crypto.PubkeyToAddress(privateKey.PublicKey),
		Key:     privateKey,
	}, nil
}

func isValidPrivateKey(key string) bool {
	if len(key) != 64 {
		return false
	}
	for _, c := range key {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

var _ usecase.SignerProvider = (*Manager)(nil)
