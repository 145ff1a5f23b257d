package app

import (
	"log/slog"

	"github.com/gmonad/gmd-deploy/internal/adapters/blockchain"
	"github.com/gmonad/gmd-deploy/internal/domain/config"
	"github.com/gmonad/gmd-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployToken      *usecase.DeployToken
	VerifyDeployment *usecase.VerifyDeployment
	ListNetworks     *usecase.ListNetworks
	ShowConfig       *usecase.ShowConfig
	SelectNetwork    *usecase.SelectNetwork

	// Adapters holding connections
	Chain *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployToken *usecase.DeployToken,
	verifyDeployment *usecase.VerifyDeployment,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	selectNetwork *usecase.SelectNetwork,
	chain *blockchain.Client,
) *App {
	return &App{
		Config:           cfg,
		Log:              log,
		DeployToken:      deployToken,
		VerifyDeployment: verifyDeployment,
		ListNetworks:     listNetworks,
		ShowConfig:       showConfig,
		SelectNetwork:    selectNetwork,
		Chain:            chain,
	}
}

// Close releases the RPC connection, if one was opened
func (a *App) Close() {
	if a.Chain != nil {
		a.Chain.Close()
	}
}
